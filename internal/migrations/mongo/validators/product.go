package validators

import "go.mongodb.org/mongo-driver/bson"

var ProductValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"city",
			"category",
			"active",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 120,
			},

			"city": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 80,
			},

			"category": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 80,
			},

			"features": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "string",
				},
			},

			"description": bson.M{
				"bsonType":  "string",
				"maxLength": 2000,
			},

			"active": bson.M{
				"bsonType": "bool",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
