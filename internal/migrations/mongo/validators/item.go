package validators

import "go.mongodb.org/mongo-driver/bson"

var ItemValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"_id", "name", "description", "available", "owner_id"},
		"additionalProperties": true,
		"properties": bson.M{
			"_id": bson.M{"bsonType": "long", "minimum": 1},
			"name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 255,
			},
			"description": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 1024,
			},
			"available":  bson.M{"bsonType": "bool"},
			"owner_id":   bson.M{"bsonType": "long", "minimum": 1},
			"request_id": bson.M{"bsonType": "long", "minimum": 1},
		},
	},
}

var CommentValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"_id", "text", "item_id", "author_id", "created"},
		"additionalProperties": true,
		"properties": bson.M{
			"_id": bson.M{"bsonType": "long", "minimum": 1},
			"text": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 1024,
			},
			"item_id":   bson.M{"bsonType": "long", "minimum": 1},
			"author_id": bson.M{"bsonType": "long", "minimum": 1},
			"created":   bson.M{"bsonType": "date"},
		},
	},
}
