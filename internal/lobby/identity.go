package lobby

import (
	"context"
	"fmt"
	"strings"

	"github.com/hilthontt/chatlobby/internal/domain"
	"github.com/hilthontt/chatlobby/internal/infrastructure/logging"
	"github.com/hilthontt/chatlobby/internal/infrastructure/validate"
)

const minUsernameLength = 2

var usernameValidator = validate.Field("username", validate.Trimmed(validate.MinLength(minUsernameLength)))

// SetDisplayName persists the trimmed name and then applies it to the
// session user. A name that cannot be saved is not applied.
func (l *Lobby) SetDisplayName(ctx context.Context, name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, span := l.startSpan(ctx, "SetDisplayName")
	defer span.End()

	name = strings.TrimSpace(name)
	if err := usernameValidator(name); err != nil {
		l.logger.Debug(logging.Validation, logging.Identity, err.Error(), nil)
		l.toast(SeverityError, "Username must be at least 2 characters long")
		return domain.ErrInvalidUsername
	}

	if err := l.names.SaveUsername(name); err != nil {
		span.RecordError(err)
		l.logger.Error(logging.Lobby, logging.Storage, "failed to persist username", map[logging.ExtraKey]any{
			logging.UserID:       l.user.ID,
			logging.ErrorMessage: err.Error(),
		})
		l.toast(SeverityError, "Failed to save username")
		return fmt.Errorf("%w: %v", domain.ErrNameNotPersisted, err)
	}

	l.user.Username = name
	l.logger.Info(logging.Lobby, logging.Identity, "username updated", map[logging.ExtraKey]any{
		logging.UserID: l.user.ID,
	})
	l.toast(SeveritySuccess, "Username updated!")
	return nil
}
