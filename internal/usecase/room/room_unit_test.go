package usecase_room

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/squabble-app/squabble/server/internal/model"
	publisher_mocks "github.com/squabble-app/squabble/server/internal/usecase/room/mocks/room/publisher"
	repo_mocks "github.com/squabble-app/squabble/server/internal/usecase/room/mocks/room/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type UsecaseRoomUnitSuite struct {
	suite.Suite
}

type resources struct {
	usecase  *Usecase
	roomRepo *repo_mocks.RoomRepository
	ctx      context.Context
}

func initResources(t provider.T) *resources {
	roomRepo := repo_mocks.NewRoomRepository(t)
	usecase := New(roomRepo, model.DefaultMaxPlayers, time.Hour, 20)

	return &resources{
		roomRepo: roomRepo,
		usecase:  usecase,
		ctx:      context.Background(),
	}
}

func validRoomCode() string {
	return "AB12"
}

func (suite *UsecaseRoomUnitSuite) TestCreate(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		hostName      string
		setupMocks    func(r *resources)
		expectError   bool
		expectedError error
	}{
		{
			name:     "Should create room successfully",
			hostName: "alice",
			setupMocks: func(r *resources) {
				r.roomRepo.On("CreateRoom", r.ctx, mock.AnythingOfType("model.Room"), mock.AnythingOfType("model.Player")).
					Return(nil).Once()
			},
			expectError: false,
		},
		{
			name:     "Should give up after three code conflicts",
			hostName: "alice",
			setupMocks: func(r *resources) {
				r.roomRepo.On("CreateRoom", r.ctx, mock.AnythingOfType("model.Room"), mock.AnythingOfType("model.Player")).
					Return(ErrCodeConflict).Times(3)
			},
			expectError:   true,
			expectedError: ErrRoomsUnavailable,
		},
		{
			name:          "Should reject empty host name",
			hostName:      "",
			setupMocks:    func(r *resources) {},
			expectError:   true,
			expectedError: ErrBadUsername,
		},
		{
			name:          "Should reject host name longer than 8 runes",
			hostName:      "toolongname",
			setupMocks:    func(r *resources) {},
			expectError:   true,
			expectedError: ErrBadUsername,
		},
		{
			name:          "Should reject host name with spaces",
			hostName:      "a b",
			setupMocks:    func(r *resources) {},
			expectError:   true,
			expectedError: ErrBadUsername,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			tc.setupMocks(r)

			code, err := r.usecase.Create(r.ctx, tc.hostName)

			if tc.expectError {
				assert.ErrorIs(t, err, tc.expectedError)
				assert.Empty(t, code)
			} else {
				assert.NoError(t, err)
				assert.Len(t, code, model.CodeLength)
			}
			r.roomRepo.AssertExpectations(t)
		})
	}
}

func (suite *UsecaseRoomUnitSuite) TestCreatedRoomShape(t provider.T) {
	t.Parallel()

	r := initResources(t)

	var created model.Room
	r.roomRepo.On("CreateRoom", r.ctx, mock.AnythingOfType("model.Room"), mock.AnythingOfType("model.Player")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(model.Room)
		}).
		Return(nil).Once()

	code, err := r.usecase.Create(r.ctx, "alice")

	assert.NoError(t, err)
	assert.Equal(t, code, created.Code)
	assert.Equal(t, "alice", created.HostName)
	assert.Equal(t, model.StateWaiting, created.State)
	assert.Equal(t, model.DefaultMaxPlayers, created.MaxPlayers)
	for _, ch := range code {
		assert.True(t, strings.ContainsRune(model.CodeAlphabet, ch))
	}
	r.roomRepo.AssertExpectations(t)
}

func (suite *UsecaseRoomUnitSuite) TestJoin(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		userName      string
		setupMocks    func(r *resources, code string)
		expectError   bool
		expectedError error
	}{
		{
			name:     "Should join room successfully",
			userName: "bob",
			setupMocks: func(r *resources, code string) {
				r.roomRepo.On("RoomByCode", r.ctx, code).
					Return(model.Room{Code: code, HostName: "alice", State: model.StateWaiting, MaxPlayers: 6}, nil).Once()
				r.roomRepo.On("PlayersCount", r.ctx, code).Return(2, nil).Once()
				r.roomRepo.On("UpsertPlayer", r.ctx, code, model.Player{Name: "bob"}).Return(nil).Once()
			},
			expectError: false,
		},
		{
			name:     "Should return error when room does not exist",
			userName: "bob",
			setupMocks: func(r *resources, code string) {
				r.roomRepo.On("RoomByCode", r.ctx, code).Return(model.Room{}, ErrResourceNotFound).Once()
			},
			expectError:   true,
			expectedError: ErrResourceNotFound,
		},
		{
			name:     "Should return error when room is full",
			userName: "bob",
			setupMocks: func(r *resources, code string) {
				r.roomRepo.On("RoomByCode", r.ctx, code).
					Return(model.Room{Code: code, HostName: "alice", State: model.StateWaiting, MaxPlayers: 6}, nil).Once()
				r.roomRepo.On("PlayersCount", r.ctx, code).Return(6, nil).Once()
			},
			expectError:   true,
			expectedError: ErrRoomFull,
		},
		{
			name:          "Should reject bad username before touching repository",
			userName:      "way too long",
			setupMocks:    func(r *resources, code string) {},
			expectError:   true,
			expectedError: ErrBadUsername,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			code := validRoomCode()
			tc.setupMocks(r, code)

			err := r.usecase.Join(r.ctx, code, tc.userName)

			if tc.expectError {
				assert.ErrorIs(t, err, tc.expectedError)
			} else {
				assert.NoError(t, err)
			}
			r.roomRepo.AssertExpectations(t)
		})
	}
}

// The creates counter is shared across handlers, so the cleanup cadence
// must hold under concurrent Create calls.
func (suite *UsecaseRoomUnitSuite) TestConcurrentCreatesKeepCleanupCadence(t provider.T) {
	t.Parallel()

	r := initResources(t)
	r.usecase = New(r.roomRepo, model.DefaultMaxPlayers, time.Hour, 2)

	r.roomRepo.On("CreateRoom", mock.Anything, mock.AnythingOfType("model.Room"), mock.AnythingOfType("model.Player")).
		Return(nil).Times(4)
	r.roomRepo.On("CleanupOrphanRooms", mock.Anything, time.Hour).
		Return(nil).Times(2)

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.usecase.Create(r.ctx, "alice")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}

func (suite *UsecaseRoomUnitSuite) TestJoinPublishesUserJoined(t provider.T) {
	t.Parallel()

	r := initResources(t)
	events := publisher_mocks.NewEventPublisher(t)
	r.usecase.WithEvents(events)

	code := validRoomCode()
	r.roomRepo.On("RoomByCode", r.ctx, code).
		Return(model.Room{Code: code, HostName: "alice", State: model.StateWaiting, MaxPlayers: 6}, nil).Once()
	r.roomRepo.On("PlayersCount", r.ctx, code).Return(1, nil).Once()
	r.roomRepo.On("UpsertPlayer", r.ctx, code, model.Player{Name: "bob"}).Return(nil).Once()
	events.On("Publish", r.ctx, "user_joined", code, map[string]interface{}{"user": "bob"}).
		Return(nil).Once()

	err := r.usecase.Join(r.ctx, code, "bob")
	assert.NoError(t, err)
}

func (suite *UsecaseRoomUnitSuite) TestJoinRejectsMalformedCode(t provider.T) {
	t.Parallel()

	for _, code := range []string{"", "ABC", "AB123", "ab12"} {
		r := initResources(t)

		err := r.usecase.Join(r.ctx, code, "bob")

		assert.ErrorIs(t, err, ErrBadRoomCode)
	}
}

func (suite *UsecaseRoomUnitSuite) TestIsHost(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		setupMocks    func(r *resources, code string)
		expected      bool
		expectError   bool
		expectedError error
	}{
		{
			name: "Should return true when user is host",
			setupMocks: func(r *resources, code string) {
				r.roomRepo.On("IsHost", r.ctx, code, "alice").Return(true, nil).Once()
			},
			expected:    true,
			expectError: false,
		},
		{
			name: "Should return error when repository fails",
			setupMocks: func(r *resources, code string) {
				r.roomRepo.On("IsHost", r.ctx, code, "alice").Return(false, ErrResourceNotFound).Once()
			},
			expected:      false,
			expectError:   true,
			expectedError: ErrResourceNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			code := validRoomCode()
			tc.setupMocks(r, code)

			result, err := r.usecase.IsHost(r.ctx, code, "alice")

			if tc.expectError {
				assert.ErrorIs(t, err, tc.expectedError)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.expected, result)
			r.roomRepo.AssertExpectations(t)
		})
	}
}

func (suite *UsecaseRoomUnitSuite) TestLeave(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		setupMocks    func(r *resources, code string)
		expectError   bool
		expectedError error
	}{
		{
			name: "Should remove player successfully",
			setupMocks: func(r *resources, code string) {
				r.roomRepo.On("RemovePlayer", r.ctx, code, "bob").Return(nil).Once()
			},
			expectError: false,
		},
		{
			name: "Should return error when player is not in room",
			setupMocks: func(r *resources, code string) {
				r.roomRepo.On("RemovePlayer", r.ctx, code, "bob").Return(ErrResourceNotFound).Once()
			},
			expectError:   true,
			expectedError: ErrResourceNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			code := validRoomCode()
			tc.setupMocks(r, code)

			err := r.usecase.Leave(r.ctx, code, "bob")

			if tc.expectError {
				assert.ErrorIs(t, err, tc.expectedError)
			} else {
				assert.NoError(t, err)
			}
			r.roomRepo.AssertExpectations(t)
		})
	}
}

func (suite *UsecaseRoomUnitSuite) TestDelete(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		setupMocks    func(r *resources, code string)
		expectError   bool
		expectedError error
	}{
		{
			name: "Should delete room successfully",
			setupMocks: func(r *resources, code string) {
				r.roomRepo.On("DeleteByCode", r.ctx, code).Return(nil).Once()
			},
			expectError: false,
		},
		{
			name: "Should return error when room does not exist",
			setupMocks: func(r *resources, code string) {
				r.roomRepo.On("DeleteByCode", r.ctx, code).Return(ErrResourceNotFound).Once()
			},
			expectError:   true,
			expectedError: ErrResourceNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			code := validRoomCode()
			tc.setupMocks(r, code)

			err := r.usecase.Delete(r.ctx, code)

			if tc.expectError {
				assert.ErrorIs(t, err, tc.expectedError)
			} else {
				assert.NoError(t, err)
			}
			r.roomRepo.AssertExpectations(t)
		})
	}
}

func TestUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(UsecaseRoomUnitSuite))
}
