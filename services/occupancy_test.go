package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frontdesk-backend/models"
)

func ptr(v uint) *uint { return &v }

func testRooms() []models.Room {
	return []models.Room{
		{Number: "101", Status: models.RoomVacant},
		{Number: "102", Status: models.RoomVacant},
		{Number: "201", Occupied: true, Status: models.RoomOccupied, GuestID: ptr(9)},
	}
}

func TestAssignRoom(t *testing.T) {
	rooms := testRooms()

	next, err := AssignRoom(rooms, "101", 5)
	require.NoError(t, err)
	assert.True(t, next[0].Occupied)
	assert.Equal(t, models.RoomOccupied, next[0].Status)
	assert.Equal(t, uint(5), *next[0].GuestID)

	// input slice untouched
	assert.False(t, rooms[0].Occupied)
}

func TestAssignRoomIdempotentForSameGuest(t *testing.T) {
	rooms := testRooms()
	next, err := AssignRoom(rooms, "201", 9)
	require.NoError(t, err)
	assert.Equal(t, uint(9), *next[2].GuestID)
}

func TestAssignRoomConflict(t *testing.T) {
	rooms := testRooms()
	_, err := AssignRoom(rooms, "201", 5)
	assert.ErrorIs(t, err, ErrRoomOccupied)
}

func TestAssignRoomUnknown(t *testing.T) {
	rooms := testRooms()
	_, err := AssignRoom(rooms, "999", 5)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestReleaseRoom(t *testing.T) {
	rooms := testRooms()

	next := ReleaseRoom(rooms, "201")
	assert.False(t, next[2].Occupied)
	assert.Equal(t, models.RoomVacant, next[2].Status)
	assert.Nil(t, next[2].GuestID)

	// idempotent on vacant and unknown rooms
	again := ReleaseRoom(next, "201")
	assert.False(t, again[2].Occupied)
	assert.Equal(t, next, ReleaseRoom(next, "999"))
}

func TestJoinSplitRooms(t *testing.T) {
	assert.Equal(t, "101/102", JoinRooms([]string{"101", "102"}))
	assert.Equal(t, "101", JoinRooms([]string{" 101 ", "", "101"}))
	assert.Equal(t, "", JoinRooms(nil))

	assert.Equal(t, []string{"101", "102"}, SplitRooms("101/102"))
	assert.Nil(t, SplitRooms(""))
	assert.Equal(t, []string{"101"}, SplitRooms("101/"))
}

func TestHeldBy(t *testing.T) {
	rooms := []models.Room{
		{Number: "102", Occupied: true, Status: models.RoomOccupied, GuestID: ptr(5)},
		{Number: "101", Occupied: true, Status: models.RoomOccupied, GuestID: ptr(5)},
		{Number: "201", Occupied: true, Status: models.RoomOccupied, GuestID: ptr(9)},
		{Number: "202", Status: models.RoomVacant},
	}
	assert.Equal(t, []string{"101", "102"}, HeldBy(rooms, 5))
	assert.Empty(t, HeldBy(rooms, 42))
}
