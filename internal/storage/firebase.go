package storage

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// NewFirebaseApp initializes the Firebase app. It first attempts to use
// credentials from the FIREBASE_SERVICE_ACCOUNT_JSON environment variable
// (Base64 encoded). If that's not found, it falls back to a local service
// account key file.
func NewFirebaseApp(localFilePath string) (*firebase.App, error) {
	var opt option.ClientOption

	encodedCreds := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON")
	if encodedCreds != "" {
		decoded, err := base64.StdEncoding.DecodeString(encodedCreds)
		if err != nil {
			return nil, fmt.Errorf("failed to decode base64 firebase credentials from FIREBASE_SERVICE_ACCOUNT_JSON: %v", err)
		}
		opt = option.WithCredentialsJSON(decoded)
		log.Println("Firebase: Initializing from FIREBASE_SERVICE_ACCOUNT_JSON environment variable.")
	} else {
		if _, err := os.Stat(localFilePath); os.IsNotExist(err) {
			return nil, fmt.Errorf("local firebase file not found: %s, and FIREBASE_SERVICE_ACCOUNT_JSON environment variable is not set", localFilePath)
		}
		opt = option.WithCredentialsFile(localFilePath)
		log.Printf("Firebase: Initializing from local file: %s.", localFilePath)
	}

	app, err := firebase.NewApp(context.Background(), nil, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %v", err)
	}
	return app, nil
}

// Clients derives the Auth and Firestore clients from an initialized app.
func Clients(ctx context.Context, app *firebase.App) (*auth.Client, *firestore.Client, error) {
	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("error getting auth client: %v", err)
	}

	db, err := app.Firestore(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("error getting firestore client: %v", err)
	}
	return authClient, db, nil
}
