// internal/app/features/groups/handler.go
package groups

import (
	"github.com/dalemusser/waffle/pantry/storage"
	groupstore "github.com/platefull/platefull/internal/app/store/groups"
	poststore "github.com/platefull/platefull/internal/app/store/groupposts"
	"github.com/platefull/platefull/internal/app/store/notifications"
	userstore "github.com/platefull/platefull/internal/app/store/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the groups feature:
// group and post stores, the user directory for enrichment, the
// notification sink, and media storage for best-effort image cleanup.
type Handler struct {
	DB     *mongo.Database
	Groups *groupstore.Store
	Posts  *poststore.Store
	Users  *userstore.Store
	Notify notifications.Dispatcher
	Media  storage.Store
	Log    *zap.Logger
}

// NewHandler constructs the groups Handler. Users is passed in (rather
// than built from db) because bootstrap may have wired its redis cache;
// notify and media may be nil, which disables those side effects.
func NewHandler(db *mongo.Database, users *userstore.Store, notify notifications.Dispatcher, media storage.Store, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Groups: groupstore.New(db),
		Posts:  poststore.New(db),
		Users:  users,
		Notify: notify,
		Media:  media,
		Log:    logger,
	}
}
