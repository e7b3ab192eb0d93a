// Package docs registers the OpenAPI documents served under /swagger/.
package docs

import "github.com/swaggo/swag"

const (
	BookingInstance = "booking"
	DriverInstance  = "driver"
)

const docTemplateHead = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },`

const healthPath = `
        "/health": {
            "get": {
                "tags": ["Health"],
                "summary": "Health Check",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        }`

const bookingPaths = `
    "paths": {` + healthPath + `,
        "/fares/quote": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Fares"],
                "summary": "Preview a fare",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/QuoteRequest"}}],
                "responses": {"200": {"description": "fare breakdown"}, "404": {"description": "vehicle or shared ride not found"}, "409": {"description": "not enough seats"}, "422": {"description": "validation failed"}}
            }
        },
        "/rides/shared/matches": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Shared rides"],
                "summary": "Find shared rides to join",
                "produces": ["application/json"],
                "parameters": [
                    {"in": "query", "name": "pickup", "type": "string", "required": true},
                    {"in": "query", "name": "dropoff", "type": "string", "required": true},
                    {"in": "query", "name": "date", "type": "string", "required": true},
                    {"in": "query", "name": "seats", "type": "integer"}
                ],
                "responses": {"200": {"description": "ranked matches"}, "422": {"description": "validation failed"}}
            }
        },
        "/bookings": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Bookings"],
                "summary": "Book a ride or join a shared ride",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/CreateBookingRequest"}}],
                "responses": {"201": {"description": "booking, payment and message"}, "404": {"description": "vehicle or shared ride not found"}, "409": {"description": "not enough seats"}, "422": {"description": "validation failed"}}
            }
        },
        "/bookings/{booking_id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Bookings"],
                "summary": "Get a booking",
                "produces": ["application/json"],
                "parameters": [{"in": "path", "name": "booking_id", "type": "string", "required": true}],
                "responses": {"200": {"description": "booking details"}, "403": {"description": "not your booking"}, "404": {"description": "booking not found"}}
            }
        },
        "/bookings/{booking_id}/cancel": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Bookings"],
                "summary": "Cancel a booking",
                "produces": ["application/json"],
                "parameters": [{"in": "path", "name": "booking_id", "type": "string", "required": true}],
                "responses": {"200": {"description": "cancelled"}, "403": {"description": "not your booking"}, "409": {"description": "booking already finished"}}
            }
        }
    },
    "definitions": {
        "QuoteRequest": {
            "type": "object",
            "required": ["pickup_location", "dropoff_location", "passenger_count"],
            "properties": {
                "pickup_location": {"type": "string", "example": "Bengaluru"},
                "dropoff_location": {"type": "string", "example": "Mysuru"},
                "vehicle_id": {"type": "string", "format": "uuid"},
                "passenger_count": {"type": "integer", "example": 2},
                "is_shared_ride": {"type": "boolean"},
                "join_shared_ride_id": {"type": "string", "format": "uuid"},
                "estimated_distance": {"type": "number"},
                "segment_distance": {"type": "number"}
            }
        },
        "CreateBookingRequest": {
            "type": "object",
            "required": ["pickup_location", "dropoff_location", "passenger_count", "passenger_name", "passenger_phone"],
            "properties": {
                "pickup_location": {"type": "string", "example": "Bengaluru"},
                "dropoff_location": {"type": "string", "example": "Mysuru"},
                "pickup_date": {"type": "string", "example": "2026-11-02"},
                "pickup_time": {"type": "string", "example": "07:30"},
                "vehicle_id": {"type": "string", "format": "uuid"},
                "passenger_count": {"type": "integer", "example": 2},
                "passenger_name": {"type": "string", "example": "Asha Rao"},
                "passenger_phone": {"type": "string", "example": "+919876543210"},
                "special_requests": {"type": "string"},
                "is_shared_ride": {"type": "boolean"},
                "join_shared_ride_id": {"type": "string", "format": "uuid"},
                "payment_method": {"type": "string", "enum": ["cash", "upi", "card"]},
                "estimated_distance": {"type": "number"},
                "segment_distance": {"type": "number"}
            }
        }
    }
}`

const driverPaths = `
    "paths": {` + healthPath + `,
        "/driver/bookings/{booking_id}/accept": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Driver"],
                "summary": "Accept a booking",
                "produces": ["application/json"],
                "parameters": [{"in": "path", "name": "booking_id", "type": "string", "required": true}],
                "responses": {"200": {"description": "accepted"}, "403": {"description": "no driver profile"}, "404": {"description": "booking not found"}, "409": {"description": "already accepted"}}
            }
        },
        "/driver/bookings/{booking_id}/status": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Driver"],
                "summary": "Report trip progress",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "booking_id", "type": "string", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/AdvanceStatusRequest"}}
                ],
                "responses": {"200": {"description": "status changed"}, "403": {"description": "not the assigned driver"}, "409": {"description": "invalid transition"}, "422": {"description": "validation failed"}}
            }
        }
    },
    "definitions": {
        "AdvanceStatusRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {
                "status": {"type": "string", "enum": ["on_the_way", "picked_up", "in_transit", "completed"]}
            }
        }
    }
}`

// SwaggerInfoBooking holds exported Swagger Info so clients can modify it
var SwaggerInfoBooking = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:3000",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Booking Service API",
	Description:      "Booking service quotes intercity fares, finds shared rides to join, books and cancels rides across Karnataka.",
	InfoInstanceName: BookingInstance,
	SwaggerTemplate:  docTemplateHead + bookingPaths,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

// SwaggerInfoDriver holds exported Swagger Info so clients can modify it
var SwaggerInfoDriver = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:3001",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Driver Service API",
	Description:      "Driver service lets a driver accept confirmed bookings and report trip progress.",
	InfoInstanceName: DriverInstance,
	SwaggerTemplate:  docTemplateHead + driverPaths,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfoBooking.InstanceName(), SwaggerInfoBooking)
	swag.Register(SwaggerInfoDriver.InstanceName(), SwaggerInfoDriver)
}
