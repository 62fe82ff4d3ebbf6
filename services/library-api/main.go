package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Johnmontoya/library-backend/pkg/db"
	emailsending "github.com/Johnmontoya/library-backend/pkg/messaging/email-sending"
	smtp_client "github.com/Johnmontoya/library-backend/pkg/smtp-client"
	usermanagement "github.com/Johnmontoya/library-backend/pkg/user-management"
	"github.com/Johnmontoya/library-backend/pkg/user-management/otp"
	"github.com/Johnmontoya/library-backend/services/library-api/apihandlers"

	libraryDB "github.com/Johnmontoya/library-backend/pkg/db/library"
	userDB "github.com/Johnmontoya/library-backend/pkg/db/user"
)

func main() {
	dbConfig := conf.DBConfigs.LibraryDB.ToDBConfig()
	dbClient, err := db.Connect(dbConfig)
	if err != nil {
		slog.Error("Error connecting to Library DB", slog.String("error", err.Error()))
		return
	}

	accountDBService := userDB.NewAccountDBServiceWithDB(dbClient, dbConfig.Dialect)
	libraryDBService := libraryDB.NewLibraryDBServiceWithDB(dbClient, dbConfig.Dialect)

	// accounts first, the library tables reference them
	ctx := context.Background()
	if err := accountDBService.EnsureSchema(ctx); err != nil {
		slog.Error("Error preparing account tables", slog.String("error", err.Error()))
		return
	}
	if err := libraryDBService.EnsureSchema(ctx); err != nil {
		slog.Error("Error preparing library tables", slog.String("error", err.Error()))
		return
	}

	smtpClients, err := smtp_client.NewSmtpClients(conf.MessagingConfigs.SmtpServerConfig)
	if err != nil {
		slog.Error("Error setting up SMTP clients", slog.String("error", err.Error()))
		return
	}
	mailer := emailsending.NewEmailSender(smtpClients, conf.MessagingConfigs.GlobalTemplateInfos)

	userService := usermanagement.NewService(
		accountDBService,
		mailer,
		otp.NewStore(otp.DefaultTTL),
		usermanagement.TokenSigningConfig{
			SignKey:   conf.UserManagementConfig.UserJWTConfig.SignKey,
			Issuer:    conf.UserManagementConfig.UserJWTConfig.Issuer,
			Audience:  conf.UserManagementConfig.UserJWTConfig.Audience,
			ExpiresIn: userJWTExpiresIn,
		},
		conf.FrontendBaseURL,
	)

	// Start webserver
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     conf.GinConfig.AllowOrigins,
		AllowMethods:     []string{"POST", "GET", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Content-Length"},
		ExposeHeaders:    []string{"Authorization", "Content-Type", "Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Add handlers
	router.GET("/", apihandlers.HealthCheckHandle)
	root := router.Group("")

	apiHandlers := apihandlers.NewHTTPHandler(
		conf.UserManagementConfig.UserJWTConfig.SignKey,
		userService,
		libraryDBService,
	)
	apiHandlers.AddAuthAPI(root)
	apiHandlers.AddCategoriesAPI(root)
	apiHandlers.AddAuthorsAPI(root)
	apiHandlers.AddBooksAPI(root)
	apiHandlers.AddLoansAPI(root)

	// Start the server
	slog.Info("Starting Library API on port " + conf.GinConfig.Port)
	if err := router.Run(":" + conf.GinConfig.Port); err != nil {
		slog.Error("Exited Library API", slog.String("error", err.Error()))
		return
	}
}
