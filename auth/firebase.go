package auth

import (
	"context"

	firebase "firebase.google.com/go"
	fbAuth "firebase.google.com/go/auth"
	"google.golang.org/api/option"
)

// InitFirebaseAuth initializes a Firebase Admin SDK auth client from a service account JSON file.
// Returns nil if no credentials file is configured.
func InitFirebaseAuth(ctx context.Context, credentialsFile string) (*fbAuth.Client, error) {
	if credentialsFile == "" {
		return nil, nil
	}
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, err
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, err
	}
	return client, nil
}
