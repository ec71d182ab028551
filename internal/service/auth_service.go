package service

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"strings"
	"time"

	"telegram_webapp/internal/cache"
	"telegram_webapp/internal/domain"
	"telegram_webapp/internal/repository"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrPasswordIncorrect = errors.New("password incorrect")
	ErrUsernameDuplicate = errors.New("username already taken")
	ErrUsernameInvalid   = errors.New("username invalid")
	ErrPasswordEmpty     = errors.New("password empty")
	ErrCannotRequestSelf = errors.New("cannot friend-request yourself")
	ErrAlreadyFriend     = errors.New("already friends")
	ErrAlreadyRequested  = errors.New("friend request already pending")
)

// AuthService is the Authorizer from §4.E: credential checks, session
// tokens, the friend graph, and unread-count bookkeeping. It is called both
// from the SessionHub worker and from HTTP handlers, so it holds no
// in-process mutable state of its own beyond the shared unread cache.
type AuthService struct {
	users   *repository.UserRepository
	friends *repository.FriendRepository
	unread  *cache.UnreadCache
}

func NewAuthService(users *repository.UserRepository, friends *repository.FriendRepository, unread *cache.UnreadCache) *AuthService {
	return &AuthService{users: users, friends: friends, unread: unread}
}

func validateUsername(name string) error {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > domain.MaxUsernameLen {
		return ErrUsernameInvalid
	}
	return nil
}

// Register implements register(name, password).
func (s *AuthService) Register(ctx context.Context, name, password string) (*domain.User, error) {
	if err := validateUsername(name); err != nil {
		return nil, err
	}
	if password == "" {
		return nil, ErrPasswordEmpty
	}

	u := &domain.User{Username: name, Password: password}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicateRow) {
			return nil, ErrUsernameDuplicate
		}
		return nil, err
	}
	return u, nil
}

// newSessionToken mints the 32-bit token described in §4.E: OS randomness
// folded together with the user name and wall clock. It is a convenience
// token, not a security primitive.
func newSessionToken(userName string) uint32 {
	var buf [4]byte
	_, _ = rand.Read(buf[:])
	seed := binary.LittleEndian.Uint32(buf[:])

	var h uint32 = 2166136261
	for _, c := range userName {
		h ^= uint32(c)
		h *= 16777619
	}
	return seed ^ h ^ uint32(time.Now().UnixNano())
}

func (s *AuthService) login(ctx context.Context, u *domain.User, password string) (int64, uint32, error) {
	if u.Password != password {
		return 0, 0, ErrPasswordIncorrect
	}
	token := newSessionToken(u.Username)
	if err := s.users.SetSessData(ctx, u.ID, &token); err != nil {
		return 0, 0, err
	}
	return u.ID, token, nil
}

// LoginByName implements log_in_by_name.
func (s *AuthService) LoginByName(ctx context.Context, name, password string) (int64, uint32, error) {
	u, err := s.users.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, 0, ErrUserNotFound
		}
		return 0, 0, err
	}
	return s.login(ctx, u, password)
}

// LoginByID implements log_in_by_id.
func (s *AuthService) LoginByID(ctx context.Context, id int64, password string) (int64, uint32, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, 0, ErrUserNotFound
		}
		return 0, 0, err
	}
	return s.login(ctx, u, password)
}

// Logout clears the user's stored sessdata token so it no longer authorizes
// (the at-most-one-session-token invariant from §8).
func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	return s.users.SetSessData(ctx, userID, nil)
}

// Authorize implements authorize(token) -> (id, name).
func (s *AuthService) Authorize(ctx context.Context, token uint32) (int64, string, error) {
	u, err := s.users.GetBySessData(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, "", ErrUserNotFound
		}
		return 0, "", err
	}
	return u.ID, u.Username, nil
}

// FriendRequest implements friend_request(requester, requestee).
func (s *AuthService) FriendRequest(ctx context.Context, requesterID, requesteeID int64) error {
	if requesterID == requesteeID {
		return ErrCannotRequestSelf
	}
	if _, err := s.users.GetByID(ctx, requesteeID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	areFriends, err := s.friends.AreFriends(ctx, requesterID, requesteeID)
	if err != nil {
		return err
	}
	if areFriends {
		return ErrAlreadyFriend
	}
	err = s.friends.CreateRequest(ctx, domain.FriendRequest{RequesterID: requesterID, RequesteeID: requesteeID})
	if errors.Is(err, repository.ErrDuplicateRow) {
		return ErrAlreadyRequested
	}
	return err
}

func (s *AuthService) Accept(ctx context.Context, requesterID, requesteeID int64) error {
	if err := s.friends.DeleteRequest(ctx, requesterID, requesteeID); err != nil {
		return err
	}
	return s.friends.AddFriendship(ctx, requesterID, requesteeID)
}

func (s *AuthService) Reject(ctx context.Context, requesterID, requesteeID int64) error {
	return s.friends.DeleteRequest(ctx, requesterID, requesteeID)
}

func (s *AuthService) ListRequests(ctx context.Context, userID int64) ([]domain.FriendRequest, error) {
	return s.friends.ListRequestsFor(ctx, userID)
}

// ListFriends merges the persisted unread counter with any not-yet-flushed
// delta, so a read immediately after unread_add reflects the bump (scenario
// 6 in §8).
func (s *AuthService) ListFriends(ctx context.Context, userID int64) ([]domain.FriendInfo, error) {
	friends, err := s.friends.ListFriends(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range friends {
		if delta, err := s.unread.PendingDelta(ctx, userID, friends[i].ID); err == nil {
			friends[i].Unread += delta
		}
	}
	return friends, nil
}

func (s *AuthService) SetName(ctx context.Context, userID int64, name string) error {
	if err := validateUsername(name); err != nil {
		return err
	}
	if err := s.users.SetUsername(ctx, userID, name); err != nil {
		if errors.Is(err, repository.ErrDuplicateRow) {
			return ErrUsernameDuplicate
		}
		return err
	}
	return nil
}

func (s *AuthService) SetSlogan(ctx context.Context, userID int64, slogan string) error {
	return s.users.SetSlogan(ctx, userID, slogan)
}

func (s *AuthService) SetIcon(ctx context.Context, userID int64, icon []byte) error {
	return s.users.SetIcon(ctx, userID, icon)
}

func (s *AuthService) GetIcon(ctx context.Context, userID int64) ([]byte, error) {
	return s.users.GetIcon(ctx, userID)
}

// UnreadAdd implements unread_add(user, friend): bumps the in-memory cache
// only. The durable relation.unread column catches up on the next flush.
func (s *AuthService) UnreadAdd(ctx context.Context, userID, friendID int64) error {
	return s.unread.Add(ctx, userID, friendID)
}

// UnreadClear implements unread_clear(user, friend): zeroes both the cache
// and the persisted counter immediately, since a client reading its own
// messages should not see the count reappear after the next flush.
func (s *AuthService) UnreadClear(ctx context.Context, userID, friendID int64) error {
	if err := s.unread.Clear(ctx, userID, friendID); err != nil {
		return err
	}
	return s.friends.ClearUnread(ctx, userID, friendID)
}
