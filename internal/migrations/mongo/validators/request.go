package validators

import "go.mongodb.org/mongo-driver/bson"

var RequestValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"_id", "description", "requester_id", "created"},
		"additionalProperties": true,
		"properties": bson.M{
			"_id": bson.M{"bsonType": "long", "minimum": 1},
			"description": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 1024,
			},
			"requester_id": bson.M{"bsonType": "long", "minimum": 1},
			"created":      bson.M{"bsonType": "date"},
		},
	},
}

var CounterValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"_id", "seq"},
		"properties": bson.M{
			"_id": bson.M{"bsonType": "string"},
			"seq": bson.M{"bsonType": "long", "minimum": 0},
		},
	},
}
