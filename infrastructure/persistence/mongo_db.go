package persistence

import (
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// NewMongoDb connects a MongoDB client for the record store collections
// (streams, stats, channels).
func NewMongoDb(host, port, user, password, name string) (*mongo.Client, error) {
	var uri string
	if user != "" {
		uri = fmt.Sprintf("mongodb://%s:%s@%s:%s/%s?authSource=admin", user, password, host, port, name)
	} else {
		uri = fmt.Sprintf("mongodb://%s:%s/%s", host, port, name)
	}

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	return client, nil
}
