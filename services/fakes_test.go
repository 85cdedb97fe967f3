package services

import (
	"context"
	"time"

	"github.com/GabrielDani/futebol-palpites-backend/models"
	"github.com/GabrielDani/futebol-palpites-backend/repositories"
)

// In-memory repository fakes shared by the service tests. Each fake only
// fills in the methods its tests reach; the rest panic to flag unexpected
// calls.

type fakeMatchRepo struct {
	matches       map[int]*models.Match
	roundConflict bool
	err           error
	lockedIDs     []int
}

func (f *fakeMatchRepo) Create(ctx context.Context, match *models.Match) error {
	if f.err != nil {
		return f.err
	}
	match.ID = len(f.matches) + 1
	if f.matches == nil {
		f.matches = make(map[int]*models.Match)
	}
	f.matches[match.ID] = match
	return nil
}

func (f *fakeMatchRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Match, error) {
	if f.err != nil {
		return nil, f.err
	}
	match, ok := f.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	return match, nil
}

func (f *fakeMatchRepo) GetStatusForUpdate(ctx context.Context, exec repositories.SQLExecutor, id int) (models.MatchStatus, error) {
	if f.err != nil {
		return "", f.err
	}
	f.lockedIDs = append(f.lockedIDs, id)
	match, ok := f.matches[id]
	if !ok {
		return "", repositories.ErrMatchNotFound
	}
	return match.Status, nil
}

func (f *fakeMatchRepo) List(ctx context.Context) ([]*models.Match, error) {
	panic("not implemented")
}

func (f *fakeMatchRepo) ListByStatus(ctx context.Context, status models.MatchStatus) ([]*models.Match, error) {
	var out []*models.Match
	for _, m := range f.matches {
		if m.Status == status {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMatchRepo) ListByRound(ctx context.Context, round int) ([]*models.Match, error) {
	panic("not implemented")
}

func (f *fakeMatchRepo) ListByTeam(ctx context.Context, teamID int) ([]*models.Match, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*models.Match
	for _, m := range f.matches {
		if m.HomeTeamID == teamID || m.AwayTeamID == teamID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMatchRepo) ListUpcoming(ctx context.Context, from time.Time, limit int) ([]*models.Match, error) {
	panic("not implemented")
}

func (f *fakeMatchRepo) CountByDateRange(ctx context.Context, from, to time.Time) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	count := 0
	for _, m := range f.matches {
		if !m.Date.Before(from) && !m.Date.After(to) {
			count++
		}
	}
	return count, nil
}

func (f *fakeMatchRepo) FindRoundConflict(ctx context.Context, round, homeTeamID, awayTeamID, excludeID int) (bool, error) {
	return f.roundConflict, nil
}

func (f *fakeMatchRepo) Update(ctx context.Context, match *models.Match) error {
	f.matches[match.ID] = match
	return nil
}

func (f *fakeMatchRepo) MarkOngoingByKickoff(ctx context.Context, now time.Time) (int64, error) {
	var flipped int64
	for _, m := range f.matches {
		if m.Status == models.MatchStatusPending && !m.Date.After(now) && !m.HasScore() {
			m.Status = models.MatchStatusOngoing
			flipped++
		}
	}
	return flipped, nil
}

func (f *fakeMatchRepo) Delete(ctx context.Context, id int) error {
	if _, ok := f.matches[id]; !ok {
		return repositories.ErrMatchNotFound
	}
	delete(f.matches, id)
	return nil
}

type fakeTeamRepo struct {
	teams map[int]*models.Team
}

func (f *fakeTeamRepo) Create(ctx context.Context, team *models.Team) error {
	panic("not implemented")
}

func (f *fakeTeamRepo) GetByID(ctx context.Context, id int) (*models.Team, error) {
	team, ok := f.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	return team, nil
}

func (f *fakeTeamRepo) List(ctx context.Context) ([]*models.Team, error) {
	out := make([]*models.Team, 0, len(f.teams))
	for _, t := range f.teams {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeTeamRepo) Count(ctx context.Context) (int, error) {
	return len(f.teams), nil
}

func (f *fakeTeamRepo) Update(ctx context.Context, team *models.Team) error {
	panic("not implemented")
}

func (f *fakeTeamRepo) UpdateLogoKey(ctx context.Context, id int, logoKey *string) error {
	panic("not implemented")
}

func (f *fakeTeamRepo) Delete(ctx context.Context, id int) error {
	panic("not implemented")
}

type fakeUserRepo struct {
	users map[int]*models.User
	err   error
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	for _, u := range f.users {
		if u.Nickname == user.Nickname {
			return repositories.ErrUserNicknameConflict
		}
	}
	user.ID = len(f.users) + 1
	if f.users == nil {
		f.users = make(map[int]*models.User)
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	// Copy, so callers mutating the result do not touch the stored row.
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) GetByNickname(ctx context.Context, nickname string) (*models.User, error) {
	for _, u := range f.users {
		if u.Nickname == nickname {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) List(ctx context.Context) ([]*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*models.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) ListByIDs(ctx context.Context, ids []int) ([]*models.User, error) {
	var out []*models.User
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) Count(ctx context.Context) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return len(f.users), nil
}

func (f *fakeUserRepo) CountCreatedBetween(ctx context.Context, from, to time.Time) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	count := 0
	for _, u := range f.users {
		if !u.CreatedAt.Before(from) && u.CreatedAt.Before(to) {
			count++
		}
	}
	return count, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	panic("not implemented")
}

func (f *fakeUserRepo) Delete(ctx context.Context, id int) error {
	panic("not implemented")
}

type fakeGuessRepo struct {
	finished []*models.Guess
	err      error
}

func (f *fakeGuessRepo) Upsert(ctx context.Context, exec repositories.SQLExecutor, guess *models.Guess) error {
	panic("not implemented")
}

func (f *fakeGuessRepo) Delete(ctx context.Context, exec repositories.SQLExecutor, userID, matchID int) error {
	panic("not implemented")
}

func (f *fakeGuessRepo) ListAll(ctx context.Context) ([]*models.Guess, error) {
	return f.finished, nil
}

func (f *fakeGuessRepo) ListFinished(ctx context.Context, userIDs []int) ([]*models.Guess, error) {
	if f.err != nil {
		return nil, f.err
	}
	if userIDs == nil {
		return f.finished, nil
	}
	wanted := make(map[int]bool, len(userIDs))
	for _, id := range userIDs {
		wanted[id] = true
	}
	var out []*models.Guess
	for _, g := range f.finished {
		if wanted[g.UserID] {
			out = append(out, g)
		}
	}
	return out, nil
}

type fakeGroupRepo struct {
	groups    map[int]*models.Group
	memberIDs map[int][]int
	addErr    error
	removeErr error
}

func (f *fakeGroupRepo) Create(ctx context.Context, group *models.Group) error {
	group.ID = len(f.groups) + 1
	if f.groups == nil {
		f.groups = make(map[int]*models.Group)
	}
	f.groups[group.ID] = group
	return nil
}

func (f *fakeGroupRepo) GetByID(ctx context.Context, id int) (*models.Group, error) {
	group, ok := f.groups[id]
	if !ok {
		return nil, repositories.ErrGroupNotFound
	}
	return group, nil
}

func (f *fakeGroupRepo) ListVisible(ctx context.Context, userID int) ([]*models.Group, error) {
	panic("not implemented")
}

func (f *fakeGroupRepo) AddMember(ctx context.Context, groupID, userID int) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.memberIDs[groupID] = append(f.memberIDs[groupID], userID)
	return nil
}

func (f *fakeGroupRepo) RemoveMember(ctx context.Context, groupID, userID int) error {
	return f.removeErr
}

func (f *fakeGroupRepo) ListMemberIDs(ctx context.Context, groupID int) ([]int, error) {
	return f.memberIDs[groupID], nil
}

func (f *fakeGroupRepo) Delete(ctx context.Context, id int) error {
	if _, ok := f.groups[id]; !ok {
		return repositories.ErrGroupNotFound
	}
	delete(f.groups, id)
	return nil
}

func intPtr(n int) *int { return &n }
