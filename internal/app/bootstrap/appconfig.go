// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like HTTP/HTTPS
// ports, TLS, logging level, and request limits. AppConfig is everything
// specific to Platefull: the MongoDB connection, media storage for group
// and post images, and the optional redis cache for user display lookups.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Media storage configuration
	StorageLocalPath string // Local storage path (e.g., "./uploads/media")
	StorageLocalURL  string // URL prefix for serving local files (e.g., "/files/media")

	// Redis cache for user display info (blank disables caching)
	RedisAddr     string // Redis address (e.g., "localhost:6379")
	RedisPassword string // Redis password (blank for none)
	RedisDB       int    // Redis logical database

	// In-app notifications (off switches delivery to a no-op sink)
	NotificationsEnabled bool
}
