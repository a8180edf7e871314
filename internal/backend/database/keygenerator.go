package database

import (
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
)

func generateID() string {
	return bson.NewObjectID().Hex()
}

// parseID validates id against the ObjectID format used by every backend.
func parseID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.NilObjectID, fmt.Errorf("%w: %q", ErrMalformedIdentifier, id)
	}
	return oid, nil
}
