package main

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v2"

	"github.com/Johnmontoya/library-backend/pkg/db"
	smtp_client "github.com/Johnmontoya/library-backend/pkg/smtp-client"
	"github.com/Johnmontoya/library-backend/pkg/user-management/pwhash"
	"github.com/Johnmontoya/library-backend/pkg/utils"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	// Variables to override "secrets" in the config file
	ENV_LIBRARY_DB_USERNAME = "LIBRARY_DB_USERNAME"
	ENV_LIBRARY_DB_PASSWORD = "LIBRARY_DB_PASSWORD"
	ENV_USER_JWT_SIGN_KEY   = "USER_JWT_SIGN_KEY"
	ENV_SMTP_PASSWORD       = "SMTP_PASSWORD"
)

type LibraryApiConfig struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// Gin configs
	GinConfig struct {
		DebugMode    bool     `json:"debug_mode" yaml:"debug_mode"`
		AllowOrigins []string `json:"allow_origins" yaml:"allow_origins"`
		Port         string   `json:"port" yaml:"port"`
	} `json:"gin_config" yaml:"gin_config"`

	// user management configs
	UserManagementConfig struct {
		PWHashing struct {
			Argon2Memory      uint32 `json:"argon2_memory" yaml:"argon2_memory"`
			Argon2Iterations  uint32 `json:"argon2_iterations" yaml:"argon2_iterations"`
			Argon2Parallelism uint8  `json:"argon2_parallelism" yaml:"argon2_parallelism"`
		} `json:"pw_hashing" yaml:"pw_hashing"`
		UserJWTConfig struct {
			SignKey   string `json:"sign_key" yaml:"sign_key"`
			ExpiresIn string `json:"expires_in" yaml:"expires_in"`
			Issuer    string `json:"issuer" yaml:"issuer"`
			Audience  string `json:"audience" yaml:"audience"`
		} `json:"user_jwt_config" yaml:"user_jwt_config"`
	} `json:"user_management_config" yaml:"user_management_config"`

	// DB configs
	DBConfigs struct {
		LibraryDB db.DBConfigYaml `json:"library_db" yaml:"library_db"`
	} `json:"db_configs" yaml:"db_configs"`

	// Outgoing email configs
	MessagingConfigs struct {
		SmtpServerConfig    smtp_client.SmtpServerList `json:"smtp_server_config" yaml:"smtp_server_config"`
		GlobalTemplateInfos map[string]string          `json:"global_template_infos" yaml:"global_template_infos"`
	} `json:"messaging_configs" yaml:"messaging_configs"`

	// Base URL the emailed confirmation/reset links point at
	FrontendBaseURL string `json:"frontend_base_url" yaml:"frontend_base_url"`
}

var (
	conf LibraryApiConfig

	userJWTExpiresIn = 30 * time.Minute
)

func init() {
	// Read config from file
	yamlFile, err := os.ReadFile(os.Getenv(ENV_CONFIG_FILE_PATH))
	if err != nil {
		panic(err)
	}

	err = yaml.UnmarshalStrict(yamlFile, &conf)
	if err != nil {
		panic(err)
	}

	// Init logger:
	utils.InitLogger(
		conf.Logging.LogLevel,
		conf.Logging.IncludeSrc,
		conf.Logging.LogToFile,
		conf.Logging.Filename,
		conf.Logging.MaxSize,
		conf.Logging.MaxAge,
		conf.Logging.MaxBackups,
		conf.Logging.CompressOldLogs,
		conf.Logging.IncludeBuildInfo,
	)

	// Override secrets from environment variables
	secretsOverride()

	if expInVal := conf.UserManagementConfig.UserJWTConfig.ExpiresIn; expInVal != "" {
		var err error
		userJWTExpiresIn, err = utils.ParseDurationString(expInVal)
		if err != nil {
			panic(err)
		}
	}

	// init argon2
	pwhash.InitArgonParams(
		conf.UserManagementConfig.PWHashing.Argon2Memory,
		conf.UserManagementConfig.PWHashing.Argon2Iterations,
		conf.UserManagementConfig.PWHashing.Argon2Parallelism,
	)

	if !conf.GinConfig.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}
}

func secretsOverride() {
	if dbUsername := os.Getenv(ENV_LIBRARY_DB_USERNAME); dbUsername != "" {
		conf.DBConfigs.LibraryDB.Username = dbUsername
	}

	if dbPassword := os.Getenv(ENV_LIBRARY_DB_PASSWORD); dbPassword != "" {
		conf.DBConfigs.LibraryDB.Password = dbPassword
	}

	if signKey := os.Getenv(ENV_USER_JWT_SIGN_KEY); signKey != "" {
		conf.UserManagementConfig.UserJWTConfig.SignKey = signKey
	}

	if smtpPassword := os.Getenv(ENV_SMTP_PASSWORD); smtpPassword != "" {
		for i := range conf.MessagingConfigs.SmtpServerConfig.Servers {
			conf.MessagingConfigs.SmtpServerConfig.Servers[i].SetPassword(smtpPassword)
		}
	}
}
