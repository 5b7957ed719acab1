package services

import (
	"errors"
	"sort"
	"strings"

	"frontdesk-backend/models"
)

var (
	ErrRoomNotFound = errors.New("room_not_found")
	ErrRoomOccupied = errors.New("room_occupied")
)

// AssignRoom binds a room to a guest, returning a new slice (callers persist
// and may replay on conflict; the data layer stays last-writer-wins).
// Idempotent when the guest already holds the room; a room held by a
// different guest is a conflict the caller must resolve.
func AssignRoom(rooms []models.Room, number string, guestID uint) ([]models.Room, error) {
	number = strings.TrimSpace(number)
	idx := findRoom(rooms, number)
	if idx < 0 {
		return rooms, ErrRoomNotFound
	}
	r := rooms[idx]
	if r.Occupied && r.GuestID != nil {
		if *r.GuestID == guestID {
			return rooms, nil
		}
		return rooms, ErrRoomOccupied
	}
	next := make([]models.Room, len(rooms))
	copy(next, rooms)
	gid := guestID
	next[idx].Occupied = true
	next[idx].Status = models.RoomOccupied
	next[idx].GuestID = &gid
	return next, nil
}

// ReleaseRoom frees a room, returning a new slice. Idempotent on a room that
// is already vacant or unknown.
func ReleaseRoom(rooms []models.Room, number string) []models.Room {
	number = strings.TrimSpace(number)
	idx := findRoom(rooms, number)
	if idx < 0 {
		return rooms
	}
	next := make([]models.Room, len(rooms))
	copy(next, rooms)
	next[idx].Occupied = false
	next[idx].Status = models.RoomVacant
	next[idx].GuestID = nil
	return next
}

func findRoom(rooms []models.Room, number string) int {
	for i := range rooms {
		if strings.TrimSpace(rooms[i].Number) == number {
			return i
		}
	}
	return -1
}

// JoinRooms builds the guest's displayed room label from the held set,
// e.g. ["101","102"] -> "101/102".
func JoinRooms(numbers []string) string {
	seen := map[string]bool{}
	out := make([]string, 0, len(numbers))
	for _, n := range numbers {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return strings.Join(out, "/")
}

// SplitRooms is the inverse of JoinRooms.
func SplitRooms(label string) []string {
	if strings.TrimSpace(label) == "" {
		return nil
	}
	parts := strings.Split(label, "/")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// HeldBy lists the room numbers currently bound to a guest, sorted for a
// stable display label.
func HeldBy(rooms []models.Room, guestID uint) []string {
	var out []string
	for i := range rooms {
		if rooms[i].Occupied && rooms[i].GuestID != nil && *rooms[i].GuestID == guestID {
			out = append(out, rooms[i].Number)
		}
	}
	sort.Strings(out)
	return out
}
