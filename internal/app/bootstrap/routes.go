// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/go-chi/chi/v5"
	groupsfeature "github.com/platefull/platefull/internal/app/features/groups"
	healthfeature "github.com/platefull/platefull/internal/app/features/health"
	"github.com/platefull/platefull/internal/app/store/notifications"
	userstore "github.com/platefull/platefull/internal/app/store/users"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. Platefull mounts the health endpoint,
// the media file server, and the groups API.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	media, err := storage.NewLocal(storage.LocalConfig{
		BasePath: appCfg.StorageLocalPath,
		BaseURL:  appCfg.StorageLocalURL,
	})
	if err != nil {
		logger.Error("media storage init failed", zap.Error(err))
		return nil, err
	}

	users := userstore.New(deps.MongoDatabase, logger)
	if deps.Redis != nil {
		users = users.WithCache(deps.Redis)
	}

	var notify notifications.Dispatcher
	if appCfg.NotificationsEnabled {
		notify = notifications.New(deps.MongoDatabase)
	} else {
		notify = notifications.Nop{}
	}

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Uploaded group and post images
	r.Handle(appCfg.StorageLocalURL+"/*", fileserver.Handler(appCfg.StorageLocalURL, appCfg.StorageLocalPath))

	groupsHandler := groupsfeature.NewHandler(deps.MongoDatabase, users, notify, media, logger)
	r.Mount("/groups", groupsfeature.Routes(groupsHandler))

	return r, nil
}
