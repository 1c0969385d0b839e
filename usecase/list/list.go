package list

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/todoflow/backend/domain"
	"github.com/todoflow/backend/internal/store"
	"github.com/todoflow/backend/repository"
	"github.com/todoflow/backend/usecase"
)

// sharedListsKey is the persisted key holding the share records per list.
const sharedListsKey = "sharedLists"

// sharedListRecord is the persisted shape for one list's sharing state.
type sharedListRecord struct {
	Owner      string         `json:"owner"`
	SharedWith []domain.Share `json:"sharedWith"`
}

type UseCase struct {
	lists  repository.ListRepository
	state  store.Store
	outbox usecase.OperationRecorder
	logger *zap.Logger
	now    func() time.Time
}

func New(lists repository.ListRepository, state store.Store, outbox usecase.OperationRecorder, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		lists:  lists,
		state:  state,
		outbox: outbox,
		logger: logger,
		now:    time.Now,
	}
}

func (uc *UseCase) Lists(ctx context.Context) ([]domain.List, error) {
	return uc.lists.List(ctx)
}

func (uc *UseCase) GetList(ctx context.Context, id string) (*domain.List, error) {
	return uc.lists.GetByID(ctx, id)
}

// CreateList derives the identifier from the name and stores the list.
func (uc *UseCase) CreateList(ctx context.Context, name, color, owner string) (*domain.List, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.NewValidationError("name", "must not be empty")
	}

	list := &domain.List{
		ID:    domain.ListID(name),
		Name:  name,
		Color: color,
		Owner: owner,
	}
	created, err := uc.lists.Create(ctx, list)
	if err != nil {
		return nil, err
	}

	uc.record(ctx, http.MethodPost, "/api/lists", created)
	return created, nil
}

func (uc *UseCase) DeleteList(ctx context.Context, id, actor string) error {
	list, err := uc.lists.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if list.Owner != "" && list.Owner != actor {
		return domain.ErrNotListOwner
	}
	if err := uc.lists.Delete(ctx, id); err != nil {
		return err
	}
	return uc.dropPersistedShares(ctx, id)
}

// ShareList grants username access to the list. Only the owner may share,
// the owner cannot be a grantee, and a user may hold at most one share.
func (uc *UseCase) ShareList(ctx context.Context, listID, actor, username, permission string) (*domain.List, error) {
	if strings.TrimSpace(username) == "" {
		return nil, domain.NewValidationError("username", "must not be empty")
	}
	if !domain.ValidPermission(permission) {
		return nil, domain.NewValidationError("permission", "must be view or edit")
	}

	list, err := uc.lists.GetByID(ctx, listID)
	if err != nil {
		return nil, err
	}
	if list.Owner != actor {
		return nil, domain.ErrNotListOwner
	}
	if username == list.Owner {
		return nil, domain.ErrShareWithOwner
	}
	if list.SharedWith(username) {
		return nil, domain.ErrDuplicateShare
	}

	list.Shares = append(list.Shares, domain.Share{
		Username:   username,
		Permission: permission,
		SharedAt:   uc.now(),
	})
	if err := uc.lists.Update(ctx, list); err != nil {
		return nil, err
	}
	if err := uc.persistShares(ctx, list); err != nil {
		return nil, err
	}

	uc.logger.Info("list shared",
		zap.String("list", listID),
		zap.String("with", username),
		zap.String("permission", permission),
	)
	return list, nil
}

// UnshareList revokes username's access. When the last share goes away the
// persisted record for the list is cleared as well.
func (uc *UseCase) UnshareList(ctx context.Context, listID, actor, username string) (*domain.List, error) {
	list, err := uc.lists.GetByID(ctx, listID)
	if err != nil {
		return nil, err
	}
	if list.Owner != actor {
		return nil, domain.ErrNotListOwner
	}

	found := false
	shares := list.Shares[:0]
	for _, s := range list.Shares {
		if s.Username == username {
			found = true
			continue
		}
		shares = append(shares, s)
	}
	if !found {
		return nil, domain.NewError(domain.ErrCodeNotFound, "share not found")
	}
	list.Shares = shares

	if err := uc.lists.Update(ctx, list); err != nil {
		return nil, err
	}
	if err := uc.persistShares(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// persistShares mirrors the list's share state into the persisted store.
func (uc *UseCase) persistShares(ctx context.Context, list *domain.List) error {
	records, err := uc.loadShares(ctx)
	if err != nil {
		return err
	}

	if len(list.Shares) == 0 {
		delete(records, list.ID)
	} else {
		records[list.ID] = sharedListRecord{
			Owner:      list.Owner,
			SharedWith: append([]domain.Share(nil), list.Shares...),
		}
	}

	return uc.saveShares(ctx, records)
}

func (uc *UseCase) dropPersistedShares(ctx context.Context, listID string) error {
	records, err := uc.loadShares(ctx)
	if err != nil {
		return err
	}
	if _, ok := records[listID]; !ok {
		return nil
	}
	delete(records, listID)
	return uc.saveShares(ctx, records)
}

// loadShares reads the persisted share records. Malformed data is treated
// as absence and proactively cleared so the failure does not repeat.
func (uc *UseCase) loadShares(ctx context.Context) (map[string]sharedListRecord, error) {
	raw, ok, err := uc.state.Get(ctx, sharedListsKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return map[string]sharedListRecord{}, nil
	}

	records := map[string]sharedListRecord{}
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		uc.logger.Warn("clearing malformed shared-lists state", zap.Error(err))
		_ = uc.state.Delete(ctx, sharedListsKey)
		return map[string]sharedListRecord{}, nil
	}
	return records, nil
}

func (uc *UseCase) saveShares(ctx context.Context, records map[string]sharedListRecord) error {
	if len(records) == 0 {
		return uc.state.Delete(ctx, sharedListsKey)
	}
	payload, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return uc.state.Set(ctx, sharedListsKey, string(payload))
}

func (uc *UseCase) record(ctx context.Context, method, path string, body interface{}) {
	if uc.outbox == nil {
		return
	}
	if err := uc.outbox.Record(ctx, method, path, body); err != nil {
		uc.logger.Warn("failed to record backend operation",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
	}
}
