package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func registerSwaggerRoutes(r chi.Router) {
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
	})

	r.Get("/swagger/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, swaggerHTML, "/swagger/openapi.json")
	})

	r.Get("/swagger/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(openAPI))
	})
}

const swaggerHTML = `<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <title>StimLink Savings Ledger API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = function() {
      window.ui = SwaggerUIBundle({
        url: "%s",
        dom_id: "#swagger-ui"
      });
    };
  </script>
</body>
</html>`

const openAPI = `{
  "openapi": "3.0.3",
  "info": {
    "title": "StimLink Savings Ledger API",
    "version": "1.0.0"
  },
  "components": {
    "securitySchemes": {
      "BasicAuth": {"type": "http", "scheme": "basic"}
    }
  },
  "paths": {
    "/health": {
      "get": {"summary": "Liveness", "responses": {"200": {"description": "OK"}}}
    },
    "/signup": {
      "post": {
        "summary": "Open a savings account",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["lastName", "middleName", "firstName", "gender", "address", "phone", "email", "password", "confirm"],
                "properties": {
                  "lastName": {"type": "string"},
                  "middleName": {"type": "string"},
                  "firstName": {"type": "string"},
                  "gender": {"type": "string"},
                  "address": {"type": "string"},
                  "phone": {"type": "string"},
                  "email": {"type": "string"},
                  "password": {"type": "string"},
                  "confirm": {"type": "string"}
                }
              }
            }
          }
        },
        "responses": {
          "201": {"description": "Created"},
          "400": {"description": "Validation error"},
          "409": {"description": "Email already in use"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/login": {
      "post": {
        "summary": "Log in; charges the monthly fee when due",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["identifier", "password"],
                "properties": {
                  "identifier": {"type": "string", "description": "email or username"},
                  "password": {"type": "string"}
                }
              }
            }
          }
        },
        "responses": {
          "200": {"description": "Logged in"},
          "401": {"description": "Invalid credentials"}
        }
      }
    },
    "/forgot-password": {
      "post": {
        "summary": "Record a password recovery request",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {"type": "object", "required": ["identifier"], "properties": {"identifier": {"type": "string"}}}
            }
          }
        },
        "responses": {"202": {"description": "Recorded"}, "400": {"description": "Validation error"}}
      }
    },
    "/contact": {
      "post": {
        "summary": "Send a contact message",
        "responses": {"201": {"description": "Stored"}, "400": {"description": "Validation error"}}
      }
    },
    "/news": {
      "get": {"summary": "List news, newest first", "responses": {"200": {"description": "News fetched"}}}
    },
    "/charges": {
      "get": {
        "summary": "Quote the withdrawal fee for an amount",
        "parameters": [
          {"name": "amount", "in": "query", "required": true, "schema": {"type": "string"}}
        ],
        "responses": {"200": {"description": "Quote"}, "400": {"description": "Validation error"}}
      }
    },
    "/me/dashboard": {
      "get": {
        "summary": "Account, latest notifications and unread news count; charges the monthly fee when due",
        "security": [{"BasicAuth": []}],
        "responses": {"200": {"description": "Dashboard"}, "401": {"description": "Unauthorized"}}
      }
    },
    "/me/news": {
      "get": {
        "summary": "List news and mark all as read",
        "security": [{"BasicAuth": []}],
        "responses": {"200": {"description": "News fetched"}, "401": {"description": "Unauthorized"}}
      }
    },
    "/me/statement": {
      "get": {
        "summary": "Statement with running totals",
        "security": [{"BasicAuth": []}],
        "responses": {"200": {"description": "Statement"}, "401": {"description": "Unauthorized"}}
      }
    },
    "/me/statement.csv": {
      "get": {
        "summary": "Statement as CSV",
        "security": [{"BasicAuth": []}],
        "responses": {"200": {"description": "CSV file", "content": {"text/csv": {}}}, "401": {"description": "Unauthorized"}}
      }
    },
    "/admin/accounts/{accountNumber}/operations": {
      "post": {
        "summary": "Deposit (debit) or withdraw (credit) funds",
        "security": [{"BasicAuth": []}],
        "parameters": [
          {"name": "accountNumber", "in": "path", "required": true, "schema": {"type": "string", "pattern": "^STL-[0-9]{3}-[0-9]{3}-[0-9]{3}$"}}
        ],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["type", "amount", "confirm"],
                "properties": {
                  "type": {"type": "string", "enum": ["debit", "credit"]},
                  "amount": {"type": "string", "description": "decimal, '.' or ',' separator"},
                  "confirm": {"type": "boolean"}
                }
              }
            }
          }
        },
        "responses": {
          "200": {"description": "Recorded"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "404": {"description": "Account not found"},
          "409": {"description": "Concurrent update conflict"},
          "422": {"description": "Insufficient funds"}
        }
      }
    },
    "/admin/accounts/{accountNumber}/messages": {
      "post": {
        "summary": "Send a customer service message",
        "security": [{"BasicAuth": []}],
        "parameters": [
          {"name": "accountNumber", "in": "path", "required": true, "schema": {"type": "string"}}
        ],
        "responses": {"201": {"description": "Sent"}, "400": {"description": "Validation error"}, "404": {"description": "Account not found"}}
      }
    },
    "/admin/overview": {
      "get": {
        "summary": "Totals, recent notifications and contact messages",
        "security": [{"BasicAuth": []}],
        "responses": {"200": {"description": "Overview"}, "401": {"description": "Unauthorized"}}
      }
    },
    "/director/news": {
      "get": {
        "summary": "List news",
        "security": [{"BasicAuth": []}],
        "responses": {"200": {"description": "News fetched"}}
      },
      "post": {
        "summary": "Publish news",
        "security": [{"BasicAuth": []}],
        "responses": {"201": {"description": "Published"}, "400": {"description": "Validation error"}}
      }
    },
    "/director/news/{id}": {
      "delete": {
        "summary": "Delete news",
        "security": [{"BasicAuth": []}],
        "parameters": [
          {"name": "id", "in": "path", "required": true, "schema": {"type": "integer"}}
        ],
        "responses": {"200": {"description": "Deleted"}, "404": {"description": "News not found"}}
      }
    },
    "/director/password-resets": {
      "post": {
        "summary": "Reset an account password to a temporary one delivered by notification",
        "security": [{"BasicAuth": []}],
        "responses": {"200": {"description": "Reset"}, "404": {"description": "Account not found"}}
      }
    }
  }
}`
