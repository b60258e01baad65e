// Package docs holds the OpenAPI document served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
	"schemes": {{ marshal .Schemes }},
	"swagger": "2.0",
	"info": {
		"description": "{{escape .Description}}",
		"title": "{{.Title}}",
		"contact": {},
		"version": "{{.Version}}"
	},
	"host": "{{.Host}}",
	"basePath": "{{.BasePath}}",
	"paths": {
		"/currencies": {
			"get": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"currencies"
				],
				"summary": "List currencies",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.ListCurrenciesResponse"
						}
					}
				}
			},
			"post": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"currencies"
				],
				"summary": "Create a currency",
				"parameters": [
					{
						"description": "Currency",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.CreateCurrencyRequest"
						}
					}
				],
				"consumes": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/dto.CurrencyResponse"
						}
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					},
					"409": {
						"description": "State conflict",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/currencies/{currencyID}": {
			"get": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"currencies"
				],
				"summary": "Get a currency",
				"parameters": [
					{
						"type": "string",
						"description": "Currency ID",
						"name": "currencyID",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.CurrencyResponse"
						}
					},
					"404": {
						"description": "Not found",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			},
			"put": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"currencies"
				],
				"summary": "Update a currency's rates",
				"parameters": [
					{
						"type": "string",
						"description": "Currency ID",
						"name": "currencyID",
						"in": "path",
						"required": true
					},
					{
						"description": "Currency",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.UpdateCurrencyRequest"
						}
					}
				],
				"consumes": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.CurrencyResponse"
						}
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					},
					"404": {
						"description": "Not found",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/currencies/{currencyID}/rate-snapshots": {
			"get": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"currencies"
				],
				"summary": "Daily rate history of a currency",
				"parameters": [
					{
						"type": "string",
						"description": "Currency ID",
						"name": "currencyID",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "Not found",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/conversions/calculate": {
			"post": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"conversions"
				],
				"summary": "Quote a forward conversion",
				"parameters": [
					{
						"description": "Currencies and amount",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.CalculateConversionRequest"
						}
					}
				],
				"consumes": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					},
					"404": {
						"description": "Not found",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/conversions/reverse-profits": {
			"post": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"conversions"
				],
				"summary": "Profit breakdown from a known payout",
				"parameters": [
					{
						"description": "Currencies and payout",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.ReverseProfitsRequest"
						}
					}
				],
				"consumes": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					},
					"404": {
						"description": "Not found",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/cash-sessions": {
			"post": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"cash-sessions"
				],
				"summary": "Open the shop-wide cash session",
				"responses": {
					"201": {
						"description": "Created"
					},
					"409": {
						"description": "State conflict",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/cash-sessions/current": {
			"get": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"cash-sessions"
				],
				"summary": "Get the open cash session",
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "Not found",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/cash-sessions/{sessionID}": {
			"get": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"cash-sessions"
				],
				"summary": "Get a cash session by ID",
				"parameters": [
					{
						"type": "string",
						"description": "Cash session ID",
						"name": "sessionID",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "Not found",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/cash-sessions/{sessionID}/closing-balances": {
			"get": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"cash-sessions"
				],
				"summary": "System balances of a session",
				"parameters": [
					{
						"type": "string",
						"description": "Cash session ID",
						"name": "sessionID",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "Not found",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/cash-sessions/{sessionID}/available-balance/{currencyID}": {
			"get": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"cash-sessions"
				],
				"summary": "The caller's float in one currency",
				"parameters": [
					{
						"type": "string",
						"description": "Cash session ID",
						"name": "sessionID",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "Currency ID",
						"name": "currencyID",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "Not found",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/cash-sessions/{sessionID}/begin-close": {
			"post": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"cash-sessions"
				],
				"summary": "Move the session to pending",
				"parameters": [
					{
						"type": "string",
						"description": "Cash session ID",
						"name": "sessionID",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"409": {
						"description": "State conflict",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/cash-sessions/{sessionID}/close": {
			"post": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"cash-sessions"
				],
				"summary": "Reconcile and close a session",
				"parameters": [
					{
						"type": "string",
						"description": "Cash session ID",
						"name": "sessionID",
						"in": "path",
						"required": true
					},
					{
						"description": "Counted balances",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.CloseCashSessionRequest"
						}
					}
				],
				"consumes": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					},
					"409": {
						"description": "State conflict",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/cash-sessions/{sessionID}/transactions": {
			"get": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"cash-sessions"
				],
				"summary": "Transactions of a session, newest first",
				"parameters": [
					{
						"type": "string",
						"description": "Cash session ID",
						"name": "sessionID",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "Not found",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/cash-sessions/{sessionID}/casher-sessions": {
			"get": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"cash-sessions"
				],
				"summary": "Casher sub-sessions of a session",
				"parameters": [
					{
						"type": "string",
						"description": "Cash session ID",
						"name": "sessionID",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "Not found",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/casher-sessions": {
			"post": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"casher-sessions"
				],
				"summary": "Open a cashier's sub-session",
				"parameters": [
					{
						"description": "Cashier and opening balances",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.OpenCasherSessionRequest"
						}
					}
				],
				"consumes": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "Created"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					},
					"409": {
						"description": "State conflict",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/casher-sessions/current": {
			"get": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"casher-sessions"
				],
				"summary": "The caller's open sub-session",
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "Not found",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/casher-sessions/{casherSessionID}": {
			"get": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"casher-sessions"
				],
				"summary": "Get a sub-session by ID",
				"parameters": [
					{
						"type": "string",
						"description": "Casher session ID",
						"name": "casherSessionID",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "Not found",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/casher-sessions/{casherSessionID}/request-close": {
			"post": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"casher-sessions"
				],
				"summary": "Ask to close a sub-session",
				"parameters": [
					{
						"type": "string",
						"description": "Casher session ID",
						"name": "casherSessionID",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					},
					"409": {
						"description": "State conflict",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/casher-sessions/{casherSessionID}/close": {
			"post": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"casher-sessions"
				],
				"summary": "Confirm the counted drawer and close a sub-session",
				"parameters": [
					{
						"type": "string",
						"description": "Casher session ID",
						"name": "casherSessionID",
						"in": "path",
						"required": true
					},
					{
						"description": "Counted balances",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.CloseCasherSessionRequest"
						}
					}
				],
				"consumes": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					},
					"409": {
						"description": "State conflict",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/transactions": {
			"post": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"transactions"
				],
				"summary": "Record an exchange in the current session",
				"parameters": [
					{
						"description": "Exchange details",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.CreateTransactionRequest"
						}
					}
				],
				"consumes": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/dto.TransactionResponse"
						}
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					},
					"409": {
						"description": "State conflict",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					},
					"422": {
						"description": "Insufficient balance",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/transactions/{transactionID}": {
			"get": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"transactions"
				],
				"summary": "Get a transaction by ID",
				"parameters": [
					{
						"type": "string",
						"description": "Transaction ID",
						"name": "transactionID",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.TransactionResponse"
						}
					},
					"404": {
						"description": "Not found",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/transactions/{transactionID}/confirm": {
			"post": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"transactions"
				],
				"summary": "Complete a pending transaction",
				"parameters": [
					{
						"type": "string",
						"description": "Transaction ID",
						"name": "transactionID",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.TransactionResponse"
						}
					},
					"409": {
						"description": "State conflict",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/transactions/{transactionID}/cancel": {
			"post": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"transactions"
				],
				"summary": "Cancel a pending transaction",
				"parameters": [
					{
						"type": "string",
						"description": "Transaction ID",
						"name": "transactionID",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.TransactionResponse"
						}
					},
					"409": {
						"description": "State conflict",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		}
	},
	"definitions": {
		"dto.CreateCurrencyRequest": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"code": {
					"type": "string"
				},
				"rateToUSD": {
					"type": "string",
					"example": "100.00"
				},
				"buyRateToUSD": {
					"type": "string",
					"example": "100.00"
				},
				"sellRateToUSD": {
					"type": "string",
					"example": "100.00"
				}
			}
		},
		"dto.UpdateCurrencyRequest": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"rateToUSD": {
					"type": "string",
					"example": "100.00"
				},
				"buyRateToUSD": {
					"type": "string",
					"example": "100.00"
				},
				"sellRateToUSD": {
					"type": "string",
					"example": "100.00"
				}
			}
		},
		"dto.CurrencyResponse": {
			"type": "object",
			"properties": {
				"currencyID": {
					"type": "string"
				},
				"name": {
					"type": "string"
				},
				"code": {
					"type": "string"
				},
				"rateToUSD": {
					"type": "string",
					"example": "100.00"
				},
				"buyRateToUSD": {
					"type": "string",
					"example": "100.00"
				},
				"sellRateToUSD": {
					"type": "string",
					"example": "100.00"
				},
				"profitMarginPercent": {
					"type": "string",
					"example": "100.00"
				},
				"createdAt": {
					"type": "string"
				},
				"createdBy": {
					"type": "string"
				},
				"lastUpdatedAt": {
					"type": "string"
				},
				"lastUpdatedBy": {
					"type": "string"
				}
			}
		},
		"dto.ListCurrenciesResponse": {
			"type": "object",
			"properties": {
				"currencies": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/dto.CurrencyResponse"
					}
				}
			}
		},
		"dto.CalculateConversionRequest": {
			"type": "object",
			"properties": {
				"fromCurrencyID": {
					"type": "string"
				},
				"toCurrencyID": {
					"type": "string"
				},
				"amount": {
					"type": "string",
					"example": "100.00"
				}
			}
		},
		"dto.ReverseProfitsRequest": {
			"type": "object",
			"properties": {
				"fromCurrencyID": {
					"type": "string"
				},
				"toCurrencyID": {
					"type": "string"
				},
				"convertedAmount": {
					"type": "string",
					"example": "100.00"
				}
			}
		},
		"dto.CloseCashSessionRequest": {
			"type": "object",
			"properties": {
				"actualClosingBalances": {
					"type": "array",
					"items": {
						"type": "object",
						"properties": {
							"currencyID": {
								"type": "string"
							},
							"amount": {
								"type": "string",
								"example": "100.00"
							}
						}
					}
				}
			}
		},
		"dto.OpenCasherSessionRequest": {
			"type": "object",
			"properties": {
				"cashSessionID": {
					"type": "string"
				},
				"casherID": {
					"type": "string"
				},
				"openingBalances": {
					"type": "object",
					"additionalProperties": {
						"type": "string",
						"example": "100.00"
					}
				}
			}
		},
		"dto.CloseCasherSessionRequest": {
			"type": "object",
			"properties": {
				"actualClosingBalances": {
					"type": "object",
					"additionalProperties": {
						"type": "string",
						"example": "100.00"
					}
				}
			}
		},
		"dto.CreateTransactionRequest": {
			"type": "object",
			"properties": {
				"fromCurrencyID": {
					"type": "string"
				},
				"toCurrencyID": {
					"type": "string"
				},
				"amount": {
					"type": "string",
					"example": "100.00"
				},
				"assignedTo": {
					"type": "string"
				},
				"notes": {
					"type": "string"
				}
			}
		},
		"dto.TransactionResponse": {
			"type": "object",
			"properties": {
				"transactionID": {
					"type": "string"
				},
				"cashSessionID": {
					"type": "string"
				},
				"fromCurrencyID": {
					"type": "string"
				},
				"toCurrencyID": {
					"type": "string"
				},
				"originalAmount": {
					"type": "string",
					"example": "100.00"
				},
				"convertedAmount": {
					"type": "string",
					"example": "100.00"
				},
				"usdAmount": {
					"type": "string",
					"example": "100.00"
				},
				"profitFromUSD": {
					"type": "string",
					"example": "100.00"
				},
				"profitToUSD": {
					"type": "string",
					"example": "100.00"
				},
				"totalProfitUSD": {
					"type": "string",
					"example": "100.00"
				},
				"status": {
					"type": "string"
				},
				"notes": {
					"type": "string"
				},
				"createdAt": {
					"type": "string"
				},
				"createdBy": {
					"type": "string"
				}
			}
		}
	},
	"securityDefinitions": {
		"BearerAuth": {
			"description": "Type \"Bearer\" followed by a space and JWT token.",
			"type": "apiKey",
			"name": "Authorization",
			"in": "header"
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Sibai Transactions API",
	Description:      "Back office for a currency exchange shop.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
