package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"_id",
			"start",
			"end",
			"item_id",
			"item_owner_id",
			"booker_id",
			"status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "long",
				"minimum":  1,
			},

			"start": bson.M{
				"bsonType": "date",
			},

			"end": bson.M{
				"bsonType": "date",
			},

			"item_id": bson.M{
				"bsonType": "long",
				"minimum":  1,
			},

			"item_owner_id": bson.M{
				"bsonType": "long",
				"minimum":  1,
			},

			"booker_id": bson.M{
				"bsonType": "long",
				"minimum":  1,
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"WAITING",
					"APPROVED",
					"REJECTED",
				},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
