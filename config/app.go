package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// App is the server configuration read from the environment.
type App struct {
	Port          string
	JWTSecret     string
	JWTTTL        time.Duration
	AdminEmail    string
	AdminPassword string
	CacheTTL      time.Duration
	CORSOrigins   []string

	// Login attempts allowed per client IP per LoginWindow.
	LoginAttempts int
	LoginWindow   time.Duration

	Storage Storage
}

type Storage struct {
	Driver        string // local | gcs | s3
	UploadDir     string
	PublicBaseURL string

	GCSBucket string

	S3Region     string
	S3Bucket     string
	S3AccessKey  string
	S3SecretKey  string
	S3Endpoint   string
	S3PublicBase string
}

func LoadApp() (*App, error) {
	a := &App{
		Port:          env("PORT", "8080"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		JWTTTL:        envDuration("JWT_TTL", 24*time.Hour),
		AdminEmail:    strings.TrimSpace(os.Getenv("ADMIN_EMAIL")),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		CacheTTL:      envDuration("CACHE_TTL", 5*time.Minute),
		CORSOrigins:   envList("CORS_ORIGINS", []string{"*"}),
		LoginAttempts: envInt("LOGIN_ATTEMPTS", 5),
		LoginWindow:   envDuration("LOGIN_WINDOW", time.Minute),
		Storage: Storage{
			Driver:        strings.ToLower(env("STORAGE_DRIVER", "local")),
			UploadDir:     env("UPLOAD_DIR", "./uploads"),
			PublicBaseURL: os.Getenv("PUBLIC_BASE_URL"),
			GCSBucket:     os.Getenv("GCS_BUCKET"),
			S3Region:      env("S3_REGION", "us-east-1"),
			S3Bucket:      os.Getenv("S3_BUCKET"),
			S3AccessKey:   os.Getenv("S3_ACCESS_KEY"),
			S3SecretKey:   os.Getenv("S3_SECRET_KEY"),
			S3Endpoint:    os.Getenv("S3_ENDPOINT"),
			S3PublicBase:  os.Getenv("S3_PUBLIC_BASE"),
		},
	}

	if a.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET environment variable is not set")
	}
	switch a.Storage.Driver {
	case "local":
	case "gcs":
		if a.Storage.GCSBucket == "" {
			return nil, errors.New("GCS_BUCKET is required when STORAGE_DRIVER=gcs")
		}
	case "s3":
		if a.Storage.S3Bucket == "" {
			return nil, errors.New("S3_BUCKET is required when STORAGE_DRIVER=s3")
		}
	default:
		return nil, errors.New("STORAGE_DRIVER must be one of local, gcs, s3")
	}
	return a, nil
}

func env(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// envDuration accepts Go durations ("90s") or plain seconds ("90").
func envDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	return def
}

func envList(key string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
