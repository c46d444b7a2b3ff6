package firebase

import (
	"context"
	"mentorapp/internal/config"

	"cloud.google.com/go/firestore"
	firebaseSDK "firebase.google.com/go"
	"firebase.google.com/go/messaging"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

// App is a global variable to hold the initialized Firebase App object
var App *firebaseSDK.App
var Context context.Context

// Initialize builds the Firebase App from the service account configured in cfg.
func Initialize(ctx context.Context, cfg *config.ServerConfig) error {
	var fbConfig *firebaseSDK.Config
	if cfg.FirebaseProjectID != "" {
		fbConfig = &firebaseSDK.Config{ProjectID: cfg.FirebaseProjectID}
	}

	opt := option.WithCredentialsFile(cfg.FirebaseCredentials)
	app, err := firebaseSDK.NewApp(ctx, fbConfig, opt)
	if err != nil {
		return errors.Wrapf(err, "failed to initialize firebase app with credentials: %s", cfg.FirebaseCredentials)
	}

	App = app
	Context = ctx
	glog.Infof("initialized firebase app")
	return nil
}

func Firestore() (*firestore.Client, error) {
	if App == nil {
		return nil, errors.New("firebase app is not initialized")
	}
	client, err := App.Firestore(Context)
	if err != nil {
		return nil, errors.Wrap(err, "firestore client error")
	}
	return client, nil
}

func Messaging() (*messaging.Client, error) {
	if App == nil {
		return nil, errors.New("firebase app is not initialized")
	}
	client, err := App.Messaging(Context)
	if err != nil {
		return nil, errors.Wrap(err, "messaging client error")
	}
	return client, nil
}
