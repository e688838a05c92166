package utils

import (
	"context"
	"log"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"booklyo/config"
)

// AuthClient verifies ID tokens minted by the external auth provider.
var AuthClient *auth.Client

// FirebaseInit initializes the Firebase App and Auth client.
func FirebaseInit() {
	ctx := context.Background()

	var (
		app *firebase.App
		err error
	)
	if path := config.AppConfig.FirebaseCredentialsFile; path != "" {
		app, err = firebase.NewApp(ctx, nil, option.WithCredentialsFile(path))
	} else {
		// Application default credentials.
		app, err = firebase.NewApp(ctx, nil)
	}
	if err != nil {
		log.Fatalf("firebase: error initializing app: %v", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		log.Fatalf("firebase: error getting Auth client: %v", err)
	}

	AuthClient = client
}

// GetAuthClient returns the Firebase Auth client.
func GetAuthClient() *auth.Client {
	return AuthClient
}
