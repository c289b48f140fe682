// utils/firebase.go
package utils

import (
	"context"

	"memoria/config"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

var FCMClient *messaging.Client

// FirebaseInit initializes the Firebase App and Messaging client. Push
// dispatch stays disabled when no credentials file is configured; reminder
// classification keeps working either way.
func FirebaseInit() {
	if config.AppConfig.FirebaseCredentialsFile == "" {
		GetLogger().Info("Firebase unconfigured; push dispatch disabled")
		return
	}

	ctx := context.Background()
	opt := option.WithCredentialsFile(config.AppConfig.FirebaseCredentialsFile)

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		GetLogger().Sugar().Warnf("firebase: error initializing app: %v", err)
		return
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		GetLogger().Sugar().Warnf("firebase: error getting Messaging client: %v", err)
		return
	}

	FCMClient = client
}
