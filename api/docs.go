// Package api contains the swagger documentation of the API.
//
// The OpenAPI document is generated from the handler annotations with
// "swag init --output api --outputTypes go".
package api

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
        "/": {
            "get": {
                "description": "Links to the top level endpoints and the summary of the current month",
                "tags": [
                    "General"
                ],
                "summary": "API root",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/root.Response"
                        }
                    }
                }
            },
            "options": {
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "tags": [
                    "General"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            }
        },
        "/healthz": {
            "get": {
                "description": "Returns the application health and, if not healthy, an error",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "General"
                ],
                "summary": "Get health",
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/healthz.Response"
                        }
                    }
                }
            },
            "options": {
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "tags": [
                    "General"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            }
        },
        "/v1": {
            "get": {
                "description": "Returns general information about the v1 API",
                "tags": [
                    "v1"
                ],
                "summary": "v1 API",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/v1.Response"
                        }
                    }
                }
            },
            "delete": {
                "description": "Permanently deletes all resources",
                "tags": [
                    "v1"
                ],
                "summary": "Delete everything",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Confirmation to delete all resources. Must have the value 'yes-please-delete-everything'",
                        "name": "confirm",
                        "in": "query"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    }
                }
            },
            "options": {
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "tags": [
                    "v1"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            }
        },
        "/v1/budgets": {
            "get": {
                "description": "Returns all budgets, latest month first",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Budgets"
                ],
                "summary": "Get budgets",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/v1.BudgetListResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/v1.BudgetListResponse"
                        }
                    }
                }
            },
            "post": {
                "description": "Creates new budgets. There can only be one budget per month.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Budgets"
                ],
                "summary": "Create budgets",
                "parameters": [
                    {
                        "description": "Budgets",
                        "name": "budgets",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/v1.BudgetEditable"
                            }
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/v1.BudgetCreateResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.BudgetCreateResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/v1.BudgetCreateResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/v1.BudgetCreateResponse"
                        }
                    }
                }
            },
            "options": {
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "tags": [
                    "Budgets"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            }
        },
        "/v1/budgets/{id}": {
            "get": {
                "description": "Returns a specific budget",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Budgets"
                ],
                "summary": "Get budget",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ignored, but needed: https://github.com/swaggo/swag/issues/1014",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/v1.BudgetResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.BudgetResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/v1.BudgetResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/v1.BudgetResponse"
                        }
                    }
                }
            },
            "put": {
                "description": "Replaces period, target amount and categories of an existing budget",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Budgets"
                ],
                "summary": "Update budget",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ignored, but needed: https://github.com/swaggo/swag/issues/1014",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Budget",
                        "name": "budget",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/v1.BudgetEditable"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/v1.BudgetResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.BudgetResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/v1.BudgetResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/v1.BudgetResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/v1.BudgetResponse"
                        }
                    }
                }
            },
            "delete": {
                "description": "Deletes a budget",
                "tags": [
                    "Budgets"
                ],
                "summary": "Delete budget",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ignored, but needed: https://github.com/swaggo/swag/issues/1014",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    }
                }
            },
            "options": {
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "tags": [
                    "Budgets"
                ],
                "summary": "Allowed HTTP verbs",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ignored, but needed: https://github.com/swaggo/swag/issues/1014",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    }
                }
            }
        },
        "/v1/categories": {
            "get": {
                "description": "Returns all categories ordered by name",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Categories"
                ],
                "summary": "Get categories",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/v1.CategoryListResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/v1.CategoryListResponse"
                        }
                    }
                }
            },
            "post": {
                "description": "Creates new categories",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Categories"
                ],
                "summary": "Create categories",
                "parameters": [
                    {
                        "description": "Categories",
                        "name": "categories",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/v1.CategoryEditable"
                            }
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/v1.CategoryCreateResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.CategoryCreateResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/v1.CategoryCreateResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/v1.CategoryCreateResponse"
                        }
                    }
                }
            },
            "options": {
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "tags": [
                    "Categories"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            }
        },
        "/v1/categories/{id}": {
            "get": {
                "description": "Returns a specific category",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Categories"
                ],
                "summary": "Get category",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ignored, but needed: https://github.com/swaggo/swag/issues/1014",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/v1.CategoryResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.CategoryResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/v1.CategoryResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/v1.CategoryResponse"
                        }
                    }
                }
            },
            "put": {
                "description": "Replaces name and color of an existing category",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Categories"
                ],
                "summary": "Update category",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ignored, but needed: https://github.com/swaggo/swag/issues/1014",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Category",
                        "name": "category",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/v1.CategoryEditable"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/v1.CategoryResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.CategoryResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/v1.CategoryResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/v1.CategoryResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/v1.CategoryResponse"
                        }
                    }
                }
            },
            "delete": {
                "description": "Deletes a category. Categories with transactions cannot be deleted.",
                "tags": [
                    "Categories"
                ],
                "summary": "Delete category",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ignored, but needed: https://github.com/swaggo/swag/issues/1014",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    }
                }
            },
            "options": {
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "tags": [
                    "Categories"
                ],
                "summary": "Allowed HTTP verbs",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ignored, but needed: https://github.com/swaggo/swag/issues/1014",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    }
                }
            }
        },
        "/v1/category-breakdown": {
            "get": {
                "description": "Returns the sum of expenses per category in a date range, highest first",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Analytics"
                ],
                "summary": "Get category breakdown",
                "parameters": [
                    {
                        "type": "string",
                        "description": "First day of the range, in YYYY-MM-DD format",
                        "name": "fromDate",
                        "in": "query",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Last day of the range, in YYYY-MM-DD format",
                        "name": "untilDate",
                        "in": "query",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/v1.CategoryBreakdownResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.CategoryBreakdownResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/v1.CategoryBreakdownResponse"
                        }
                    }
                }
            },
            "options": {
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "tags": [
                    "Analytics"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            }
        },
        "/v1/export/csv": {
            "get": {
                "description": "Returns all transactions in a date range as CSV file, oldest first",
                "produces": [
                    "text/csv"
                ],
                "tags": [
                    "Export"
                ],
                "summary": "Export CSV",
                "parameters": [
                    {
                        "type": "string",
                        "description": "First day of the range, in YYYY-MM-DD format",
                        "name": "fromDate",
                        "in": "query",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Last day of the range, in YYYY-MM-DD format",
                        "name": "untilDate",
                        "in": "query",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    }
                }
            },
            "options": {
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "tags": [
                    "Export"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            }
        },
        "/v1/export/pdf": {
            "get": {
                "description": "Returns all transactions in a date range as printable PDF report with income and expense totals, oldest first",
                "produces": [
                    "application/pdf"
                ],
                "tags": [
                    "Export"
                ],
                "summary": "Export PDF",
                "parameters": [
                    {
                        "type": "string",
                        "description": "First day of the range, in YYYY-MM-DD format",
                        "name": "fromDate",
                        "in": "query",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Last day of the range, in YYYY-MM-DD format",
                        "name": "untilDate",
                        "in": "query",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    }
                }
            },
            "options": {
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "tags": [
                    "Export"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            }
        },
        "/v1/export/xlsx": {
            "get": {
                "description": "Returns all transactions in a date range as Excel workbook, oldest first",
                "produces": [
                    "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
                ],
                "tags": [
                    "Export"
                ],
                "summary": "Export XLSX",
                "parameters": [
                    {
                        "type": "string",
                        "description": "First day of the range, in YYYY-MM-DD format",
                        "name": "fromDate",
                        "in": "query",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Last day of the range, in YYYY-MM-DD format",
                        "name": "untilDate",
                        "in": "query",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    }
                }
            },
            "options": {
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "tags": [
                    "Export"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            }
        },
        "/v1/months/{month}": {
            "get": {
                "description": "Returns the totals of all transactions in a month and how much of the budget for the month has been spent",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Months"
                ],
                "summary": "Get month",
                "parameters": [
                    {
                        "type": "string",
                        "description": "The month in YYYY-MM format",
                        "name": "month",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/v1.MonthlySummaryResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.MonthlySummaryResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/v1.MonthlySummaryResponse"
                        }
                    }
                }
            },
            "options": {
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "tags": [
                    "Months"
                ],
                "summary": "Allowed HTTP verbs",
                "parameters": [
                    {
                        "type": "string",
                        "description": "The month in YYYY-MM format",
                        "name": "month",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            }
        },
        "/v1/months/{month}/budget": {
            "get": {
                "description": "Returns the budget for a month",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Months"
                ],
                "summary": "Get budget for month",
                "parameters": [
                    {
                        "type": "string",
                        "description": "The month in YYYY-MM format",
                        "name": "month",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/v1.BudgetResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.BudgetResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/v1.BudgetResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/v1.BudgetResponse"
                        }
                    }
                }
            },
            "options": {
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "tags": [
                    "Months"
                ],
                "summary": "Allowed HTTP verbs",
                "parameters": [
                    {
                        "type": "string",
                        "description": "The month in YYYY-MM format",
                        "name": "month",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            }
        },
        "/v1/sessions/{key}": {
            "get": {
                "description": "Returns the preferences for a session. They are created with defaults if they do not exist yet.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Sessions"
                ],
                "summary": "Get session preferences",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Key identifying the session",
                        "name": "key",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/v1.SessionResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.SessionResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/v1.SessionResponse"
                        }
                    }
                }
            },
            "put": {
                "description": "Updates the preferences for a session. Omitted fields are not changed.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Sessions"
                ],
                "summary": "Update session preferences",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Key identifying the session",
                        "name": "key",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Preferences",
                        "name": "preferences",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/v1.SessionEditable"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/v1.SessionResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.SessionResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/v1.SessionResponse"
                        }
                    }
                }
            },
            "options": {
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "tags": [
                    "Sessions"
                ],
                "summary": "Allowed HTTP verbs",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Key identifying the session",
                        "name": "key",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            }
        },
        "/v1/tags": {
            "get": {
                "description": "Returns all tags ordered by name",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Tags"
                ],
                "summary": "Get tags",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/v1.TagListResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/v1.TagListResponse"
                        }
                    }
                }
            },
            "post": {
                "description": "Creates new tags",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Tags"
                ],
                "summary": "Create tags",
                "parameters": [
                    {
                        "description": "Tags",
                        "name": "tags",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/v1.TagEditable"
                            }
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/v1.TagCreateResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.TagCreateResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/v1.TagCreateResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/v1.TagCreateResponse"
                        }
                    }
                }
            },
            "options": {
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "tags": [
                    "Tags"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            }
        },
        "/v1/tags/{id}": {
            "get": {
                "description": "Returns a specific tag",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Tags"
                ],
                "summary": "Get tag",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ignored, but needed: https://github.com/swaggo/swag/issues/1014",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/v1.TagResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.TagResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/v1.TagResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/v1.TagResponse"
                        }
                    }
                }
            },
            "put": {
                "description": "Replaces name and color of an existing tag",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Tags"
                ],
                "summary": "Update tag",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ignored, but needed: https://github.com/swaggo/swag/issues/1014",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Tag",
                        "name": "tag",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/v1.TagEditable"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/v1.TagResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.TagResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/v1.TagResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/v1.TagResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/v1.TagResponse"
                        }
                    }
                }
            },
            "delete": {
                "description": "Deletes a tag. Tags that are attached to transactions cannot be deleted.",
                "tags": [
                    "Tags"
                ],
                "summary": "Delete tag",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ignored, but needed: https://github.com/swaggo/swag/issues/1014",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    }
                }
            },
            "options": {
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "tags": [
                    "Tags"
                ],
                "summary": "Allowed HTTP verbs",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ignored, but needed: https://github.com/swaggo/swag/issues/1014",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    }
                }
            }
        },
        "/v1/transactions": {
            "get": {
                "description": "Returns a list of transactions, latest first",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Transactions"
                ],
                "summary": "Get transactions",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Transactions at and after this date, in YYYY-MM-DD format",
                        "name": "fromDate",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Transactions before and at this date, in YYYY-MM-DD format",
                        "name": "untilDate",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Filter by type, INCOME or EXPENSE",
                        "name": "type",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Filter by category ID",
                        "name": "category",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Filter by tag ID",
                        "name": "tag",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Filter by memo. \\\"*\\\" matches any sequence of characters",
                        "name": "memo",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "The offset of the first Transaction returned. Defaults to 0.",
                        "name": "offset",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Maximum number of Transactions to return. Defaults to 50. Negative values return all transactions.",
                        "name": "limit",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/v1.TransactionListResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.TransactionListResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/v1.TransactionListResponse"
                        }
                    }
                }
            },
            "post": {
                "description": "Creates transactions from the list of submitted transaction data. The response code is the highest response code number that a single transaction creation would have caused. If it is not equal to 201, at least one transaction has an error.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Transactions"
                ],
                "summary": "Create transactions",
                "parameters": [
                    {
                        "description": "Transactions",
                        "name": "transactions",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/v1.TransactionEditable"
                            }
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/v1.TransactionCreateResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.TransactionCreateResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/v1.TransactionCreateResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/v1.TransactionCreateResponse"
                        }
                    }
                }
            },
            "options": {
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "tags": [
                    "Transactions"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            }
        },
        "/v1/transactions/{id}": {
            "get": {
                "description": "Returns a specific transaction",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Transactions"
                ],
                "summary": "Get transaction",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ignored, but needed: https://github.com/swaggo/swag/issues/1014",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/v1.TransactionResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.TransactionResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/v1.TransactionResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/v1.TransactionResponse"
                        }
                    }
                }
            },
            "put": {
                "description": "Replaces all fields of an existing transaction. Tags not in the submitted list are detached.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Transactions"
                ],
                "summary": "Update transaction",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ignored, but needed: https://github.com/swaggo/swag/issues/1014",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Transaction",
                        "name": "transaction",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/v1.TransactionEditable"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/v1.TransactionResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.TransactionResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/v1.TransactionResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/v1.TransactionResponse"
                        }
                    }
                }
            },
            "delete": {
                "description": "Deletes a transaction",
                "tags": [
                    "Transactions"
                ],
                "summary": "Delete transaction",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ignored, but needed: https://github.com/swaggo/swag/issues/1014",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    }
                }
            },
            "options": {
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "tags": [
                    "Transactions"
                ],
                "summary": "Allowed HTTP verbs",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ignored, but needed: https://github.com/swaggo/swag/issues/1014",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    }
                }
            }
        },
        "/version": {
            "get": {
                "description": "Returns the release and Go version of the running backend",
                "tags": [
                    "General"
                ],
                "summary": "API version",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/version.Response"
                        }
                    }
                }
            },
            "options": {
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "tags": [
                    "General"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            }
        }
    },
    "definitions": {
        "healthz.Response": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string",
                    "description": "The error, if any occurred",
                    "example": "The database cannot be accessed"
                }
            }
        },
        "root.Links": {
            "type": "object",
            "properties": {
                "docs": {
                    "type": "string",
                    "description": "Swagger API documentation",
                    "example": "https://example.com/api/docs/index.html"
                },
                "healthz": {
                    "type": "string",
                    "description": "Database health check",
                    "example": "https://example.com/api/healthz"
                },
                "version": {
                    "type": "string",
                    "description": "Running cashlog version",
                    "example": "https://example.com/api/version"
                },
                "metrics": {
                    "type": "string",
                    "description": "Prometheus metrics",
                    "example": "https://example.com/api/metrics"
                },
                "v1": {
                    "type": "string",
                    "description": "Links to the ledger, budgets and analytics endpoints",
                    "example": "https://example.com/api/v1"
                },
                "currentMonth": {
                    "type": "string",
                    "description": "Summary of the month the request is made in",
                    "example": "https://example.com/api/v1/months/2024-01"
                }
            }
        },
        "root.Response": {
            "type": "object",
            "properties": {
                "links": {
                    "description": "Links to the top level endpoints",
                    "allOf": [
                        {
                            "$ref": "#/definitions/root.Links"
                        }
                    ]
                },
                "baseCurrency": {
                    "type": "string",
                    "description": "Currency all canonical amounts and totals are reported in",
                    "example": "KRW"
                }
            }
        },
        "v1.Budget": {
            "type": "object",
            "required": [
                "year",
                "month"
            ],
            "properties": {
                "id": {
                    "type": "string",
                    "format": "uuid",
                    "description": "UUID for the resource",
                    "example": "65392deb-5e92-4268-b114-297faad6cdce"
                },
                "createdAt": {
                    "type": "string",
                    "format": "date-time",
                    "description": "Time the resource was created",
                    "example": "2024-01-02T19:28:44.491514Z"
                },
                "updatedAt": {
                    "type": "string",
                    "format": "date-time",
                    "description": "Last time the resource was updated",
                    "example": "2024-01-17T20:14:01.048145Z"
                },
                "year": {
                    "type": "integer",
                    "description": "Year of the budget period",
                    "example": 2024
                },
                "month": {
                    "type": "integer",
                    "description": "Month of the budget period, 1 to 12",
                    "example": 1
                },
                "targetAmount": {
                    "type": "string",
                    "description": "Spending target in the base currency",
                    "example": "1500000"
                },
                "categoryIds": {
                    "type": "array",
                    "items": {
                        "type": "string",
                        "format": "uuid"
                    },
                    "description": "Categories the budget is bound to. Optional"
                },
                "period": {
                    "type": "string",
                    "description": "The month the budget is for",
                    "example": "2024-01"
                },
                "categories": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/v1.BudgetCategory"
                    },
                    "description": "Categories the budget is bound to, ordered by name"
                },
                "links": {
                    "$ref": "#/definitions/v1.BudgetLinks"
                }
            }
        },
        "v1.BudgetCategory": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string",
                    "format": "uuid",
                    "description": "ID of the category",
                    "example": "a6c8ff40-23a2-4b1c-8c71-5be40bb5a2ac"
                },
                "name": {
                    "type": "string",
                    "description": "Name of the category",
                    "example": "Groceries"
                }
            }
        },
        "v1.BudgetCreateResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/v1.BudgetResponse"
                    },
                    "description": "List of the created Budgets or their respective error"
                },
                "error": {
                    "type": "string",
                    "description": "The error, if any occurred",
                    "example": "the specified resource ID is not a valid UUID"
                }
            }
        },
        "v1.BudgetEditable": {
            "type": "object",
            "required": [
                "year",
                "month"
            ],
            "properties": {
                "year": {
                    "type": "integer",
                    "description": "Year of the budget period",
                    "example": 2024
                },
                "month": {
                    "type": "integer",
                    "description": "Month of the budget period, 1 to 12",
                    "example": 1
                },
                "targetAmount": {
                    "type": "string",
                    "description": "Spending target in the base currency",
                    "example": "1500000"
                },
                "categoryIds": {
                    "type": "array",
                    "items": {
                        "type": "string",
                        "format": "uuid"
                    },
                    "description": "Categories the budget is bound to. Optional"
                }
            }
        },
        "v1.BudgetLinks": {
            "type": "object",
            "properties": {
                "self": {
                    "type": "string",
                    "description": "The budget itself",
                    "example": "https://example.com/api/v1/budgets/5b1f4c0e-e1a6-4c4b-9d33-0c1fbd0f8d2c"
                },
                "summary": {
                    "type": "string",
                    "description": "The monthly summary for the budget period",
                    "example": "https://example.com/api/v1/months/2024-01"
                }
            }
        },
        "v1.BudgetListResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/v1.Budget"
                    },
                    "description": "List of Budgets"
                },
                "error": {
                    "type": "string",
                    "description": "The error, if any occurred",
                    "example": "the specified resource ID is not a valid UUID"
                }
            }
        },
        "v1.BudgetResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "description": "Data for the Budget",
                    "allOf": [
                        {
                            "$ref": "#/definitions/v1.Budget"
                        }
                    ]
                },
                "error": {
                    "type": "string",
                    "description": "The error, if any occurred",
                    "example": "the specified resource ID is not a valid UUID"
                }
            }
        },
        "v1.Category": {
            "type": "object",
            "required": [
                "name"
            ],
            "properties": {
                "id": {
                    "type": "string",
                    "format": "uuid",
                    "description": "UUID for the resource",
                    "example": "65392deb-5e92-4268-b114-297faad6cdce"
                },
                "createdAt": {
                    "type": "string",
                    "format": "date-time",
                    "description": "Time the resource was created",
                    "example": "2024-01-02T19:28:44.491514Z"
                },
                "updatedAt": {
                    "type": "string",
                    "format": "date-time",
                    "description": "Last time the resource was updated",
                    "example": "2024-01-17T20:14:01.048145Z"
                },
                "name": {
                    "type": "string",
                    "description": "Name of the category, unique",
                    "example": "Groceries"
                },
                "color": {
                    "type": "string",
                    "description": "Display color in #RRGGBB notation",
                    "example": "#4caf50"
                },
                "links": {
                    "$ref": "#/definitions/v1.CategoryLinks"
                }
            }
        },
        "v1.CategoryBreakdown": {
            "type": "object",
            "properties": {
                "fromDate": {
                    "type": "string",
                    "description": "First day of the range",
                    "example": "2024-01-01"
                },
                "untilDate": {
                    "type": "string",
                    "description": "Last day of the range",
                    "example": "2024-01-31"
                },
                "totalExpense": {
                    "type": "string",
                    "description": "Sum of all expenses in the range",
                    "example": "1000000"
                },
                "categories": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/v1.CategoryExpense"
                    },
                    "description": "Expenses per category, highest amount first"
                }
            }
        },
        "v1.CategoryBreakdownResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "description": "Data for the range",
                    "allOf": [
                        {
                            "$ref": "#/definitions/v1.CategoryBreakdown"
                        }
                    ]
                },
                "error": {
                    "type": "string",
                    "description": "The error, if any occurred",
                    "example": "the fromDate and untilDate query parameters must be set"
                }
            }
        },
        "v1.CategoryCreateResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/v1.CategoryResponse"
                    },
                    "description": "List of the created Categories or their respective error"
                },
                "error": {
                    "type": "string",
                    "description": "The error, if any occurred",
                    "example": "the specified resource ID is not a valid UUID"
                }
            }
        },
        "v1.CategoryEditable": {
            "type": "object",
            "required": [
                "name"
            ],
            "properties": {
                "name": {
                    "type": "string",
                    "description": "Name of the category, unique",
                    "example": "Groceries"
                },
                "color": {
                    "type": "string",
                    "description": "Display color in #RRGGBB notation",
                    "example": "#4caf50"
                }
            }
        },
        "v1.CategoryExpense": {
            "type": "object",
            "properties": {
                "categoryId": {
                    "type": "string",
                    "description": "ID of the category",
                    "example": "a6c8ff40-23a2-4b1c-8c71-5be40bb5a2ac"
                },
                "categoryName": {
                    "type": "string",
                    "description": "Name of the category",
                    "example": "Rent"
                },
                "amount": {
                    "type": "string",
                    "description": "Sum of expenses in the category",
                    "example": "500000"
                },
                "share": {
                    "type": "string",
                    "description": "Share of the total expenses in percent",
                    "example": "50"
                },
                "category": {
                    "type": "string",
                    "description": "The category",
                    "example": "https://example.com/api/v1/categories/a6c8ff40-23a2-4b1c-8c71-5be40bb5a2ac"
                }
            }
        },
        "v1.CategoryLinks": {
            "type": "object",
            "properties": {
                "self": {
                    "type": "string",
                    "description": "The category itself",
                    "example": "https://example.com/api/v1/categories/3b1ea324-d438-4419-882a-2fc91d71772f"
                },
                "transactions": {
                    "type": "string",
                    "description": "Transactions in this category",
                    "example": "https://example.com/api/v1/transactions?category=3b1ea324-d438-4419-882a-2fc91d71772f"
                }
            }
        },
        "v1.CategoryListResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/v1.Category"
                    },
                    "description": "List of Categories"
                },
                "error": {
                    "type": "string",
                    "description": "The error, if any occurred",
                    "example": "the specified resource ID is not a valid UUID"
                }
            }
        },
        "v1.CategoryResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "description": "Data for the Category",
                    "allOf": [
                        {
                            "$ref": "#/definitions/v1.Category"
                        }
                    ]
                },
                "error": {
                    "type": "string",
                    "description": "The error, if any occurred",
                    "example": "the specified resource ID is not a valid UUID"
                }
            }
        },
        "v1.Links": {
            "type": "object",
            "properties": {
                "categories": {
                    "type": "string",
                    "description": "URL of Category collection endpoint",
                    "example": "https://example.com/api/v1/categories"
                },
                "tags": {
                    "type": "string",
                    "description": "URL of Tag collection endpoint",
                    "example": "https://example.com/api/v1/tags"
                },
                "budgets": {
                    "type": "string",
                    "description": "URL of Budget collection endpoint",
                    "example": "https://example.com/api/v1/budgets"
                },
                "transactions": {
                    "type": "string",
                    "description": "URL of Transaction collection endpoint",
                    "example": "https://example.com/api/v1/transactions"
                },
                "months": {
                    "type": "string",
                    "description": "URL template of the monthly summary",
                    "example": "https://example.com/api/v1/months/YYYY-MM"
                },
                "categoryBreakdown": {
                    "type": "string",
                    "description": "URL of the category breakdown",
                    "example": "https://example.com/api/v1/category-breakdown"
                },
                "export": {
                    "type": "string",
                    "description": "URL of the export endpoints",
                    "example": "https://example.com/api/v1/export"
                },
                "sessions": {
                    "type": "string",
                    "description": "URL template of session preferences",
                    "example": "https://example.com/api/v1/sessions/{key}"
                }
            }
        },
        "v1.MonthLinks": {
            "type": "object",
            "properties": {
                "self": {
                    "type": "string",
                    "description": "The summary itself",
                    "example": "https://example.com/api/v1/months/2024-01"
                },
                "budget": {
                    "type": "string",
                    "description": "The budget for the month",
                    "example": "https://example.com/api/v1/months/2024-01/budget"
                },
                "transactions": {
                    "type": "string",
                    "description": "Transactions of the month",
                    "example": "https://example.com/api/v1/transactions?fromDate=2024-01-01&untilDate=2024-01-31"
                }
            }
        },
        "v1.MonthlySummary": {
            "type": "object",
            "properties": {
                "month": {
                    "type": "string",
                    "description": "The month",
                    "example": "2024-01"
                },
                "totalIncome": {
                    "type": "string",
                    "description": "Sum of all income in the base currency",
                    "example": "3000000"
                },
                "totalExpense": {
                    "type": "string",
                    "description": "Sum of all expenses in the base currency",
                    "example": "30000"
                },
                "netAmount": {
                    "type": "string",
                    "description": "Income minus expenses",
                    "example": "2970000"
                },
                "budgetTarget": {
                    "type": "string",
                    "description": "Target amount of the budget. Null if there is no budget",
                    "example": "25000"
                },
                "budgetRemaining": {
                    "type": "string",
                    "description": "Target amount minus expenses. Null if there is no budget",
                    "example": "-5000"
                },
                "usagePercentage": {
                    "type": "string",
                    "description": "Expenses in percent of the target amount. Null if there is no budget",
                    "example": "120"
                },
                "alertLevel": {
                    "type": "string",
                    "enum": [
                        "NONE",
                        "GREEN",
                        "YELLOW",
                        "RED"
                    ],
                    "description": "How much of the budget has been spent",
                    "example": "RED"
                },
                "transactionCount": {
                    "type": "integer",
                    "description": "Number of transactions in the month",
                    "example": 2
                },
                "links": {
                    "$ref": "#/definitions/v1.MonthLinks"
                }
            }
        },
        "v1.MonthlySummaryResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "description": "Data for the month",
                    "allOf": [
                        {
                            "$ref": "#/definitions/v1.MonthlySummary"
                        }
                    ]
                },
                "error": {
                    "type": "string",
                    "description": "The error, if any occurred",
                    "example": "could not parse 'January' as month, use the YYYY-MM format"
                }
            }
        },
        "v1.Pagination": {
            "type": "object",
            "properties": {
                "count": {
                    "type": "integer",
                    "description": "The amount of records returned in this response",
                    "example": 25
                },
                "offset": {
                    "type": "integer",
                    "description": "The offset for the first record returned",
                    "example": 50
                },
                "limit": {
                    "type": "integer",
                    "description": "The maximum amount of resources to return for this request",
                    "example": 25
                },
                "total": {
                    "type": "integer",
                    "description": "The total number of resources matching the query",
                    "example": 827
                }
            }
        },
        "v1.Response": {
            "type": "object",
            "properties": {
                "links": {
                    "description": "Links for the v1 API",
                    "allOf": [
                        {
                            "$ref": "#/definitions/v1.Links"
                        }
                    ]
                }
            }
        },
        "v1.Session": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string",
                    "format": "uuid",
                    "description": "UUID for the resource",
                    "example": "65392deb-5e92-4268-b114-297faad6cdce"
                },
                "createdAt": {
                    "type": "string",
                    "format": "date-time",
                    "description": "Time the resource was created",
                    "example": "2024-01-02T19:28:44.491514Z"
                },
                "updatedAt": {
                    "type": "string",
                    "format": "date-time",
                    "description": "Last time the resource was updated",
                    "example": "2024-01-17T20:14:01.048145Z"
                },
                "key": {
                    "type": "string",
                    "description": "Key identifying the session",
                    "example": "3c2f7a8e"
                },
                "theme": {
                    "type": "string",
                    "enum": [
                        "LIGHT",
                        "DARK"
                    ],
                    "description": "Display theme",
                    "example": "DARK"
                },
                "defaultCurrency": {
                    "type": "string",
                    "description": "Currency preselected for new transactions",
                    "example": "KRW"
                },
                "links": {
                    "$ref": "#/definitions/v1.SessionLinks"
                }
            }
        },
        "v1.SessionEditable": {
            "type": "object",
            "properties": {
                "theme": {
                    "type": "string",
                    "enum": [
                        "LIGHT",
                        "DARK"
                    ],
                    "description": "Display theme",
                    "example": "DARK"
                },
                "defaultCurrency": {
                    "type": "string",
                    "description": "Currency preselected for new transactions",
                    "example": "KRW"
                }
            }
        },
        "v1.SessionLinks": {
            "type": "object",
            "properties": {
                "self": {
                    "type": "string",
                    "description": "The session preferences",
                    "example": "https://example.com/api/v1/sessions/3c2f7a8e"
                }
            }
        },
        "v1.SessionResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "description": "Data for the session",
                    "allOf": [
                        {
                            "$ref": "#/definitions/v1.Session"
                        }
                    ]
                },
                "error": {
                    "type": "string",
                    "description": "The error, if any occurred",
                    "example": "the theme must be one of LIGHT, DARK"
                }
            }
        },
        "v1.Tag": {
            "type": "object",
            "required": [
                "name"
            ],
            "properties": {
                "id": {
                    "type": "string",
                    "format": "uuid",
                    "description": "UUID for the resource",
                    "example": "65392deb-5e92-4268-b114-297faad6cdce"
                },
                "createdAt": {
                    "type": "string",
                    "format": "date-time",
                    "description": "Time the resource was created",
                    "example": "2024-01-02T19:28:44.491514Z"
                },
                "updatedAt": {
                    "type": "string",
                    "format": "date-time",
                    "description": "Last time the resource was updated",
                    "example": "2024-01-17T20:14:01.048145Z"
                },
                "name": {
                    "type": "string",
                    "description": "Name of the tag, unique",
                    "example": "vacation"
                },
                "color": {
                    "type": "string",
                    "description": "Optional display color in #RRGGBB notation",
                    "example": "#ff9800"
                },
                "links": {
                    "$ref": "#/definitions/v1.TagLinks"
                }
            }
        },
        "v1.TagCreateResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/v1.TagResponse"
                    },
                    "description": "List of the created Tags or their respective error"
                },
                "error": {
                    "type": "string",
                    "description": "The error, if any occurred",
                    "example": "the specified resource ID is not a valid UUID"
                }
            }
        },
        "v1.TagEditable": {
            "type": "object",
            "required": [
                "name"
            ],
            "properties": {
                "name": {
                    "type": "string",
                    "description": "Name of the tag, unique",
                    "example": "vacation"
                },
                "color": {
                    "type": "string",
                    "description": "Optional display color in #RRGGBB notation",
                    "example": "#ff9800"
                }
            }
        },
        "v1.TagLinks": {
            "type": "object",
            "properties": {
                "self": {
                    "type": "string",
                    "description": "The tag itself",
                    "example": "https://example.com/api/v1/tags/d2525c22-ac2d-4d0a-8bb3-1ba2e1a2e3d6"
                },
                "transactions": {
                    "type": "string",
                    "description": "Transactions with this tag",
                    "example": "https://example.com/api/v1/transactions?tag=d2525c22-ac2d-4d0a-8bb3-1ba2e1a2e3d6"
                }
            }
        },
        "v1.TagListResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/v1.Tag"
                    },
                    "description": "List of Tags"
                },
                "error": {
                    "type": "string",
                    "description": "The error, if any occurred",
                    "example": "the specified resource ID is not a valid UUID"
                }
            }
        },
        "v1.TagResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "description": "Data for the Tag",
                    "allOf": [
                        {
                            "$ref": "#/definitions/v1.Tag"
                        }
                    ]
                },
                "error": {
                    "type": "string",
                    "description": "The error, if any occurred",
                    "example": "the specified resource ID is not a valid UUID"
                }
            }
        },
        "v1.Transaction": {
            "type": "object",
            "required": [
                "type",
                "currency"
            ],
            "properties": {
                "id": {
                    "type": "string",
                    "format": "uuid",
                    "description": "UUID for the resource",
                    "example": "65392deb-5e92-4268-b114-297faad6cdce"
                },
                "createdAt": {
                    "type": "string",
                    "format": "date-time",
                    "description": "Time the resource was created",
                    "example": "2024-01-02T19:28:44.491514Z"
                },
                "updatedAt": {
                    "type": "string",
                    "format": "date-time",
                    "description": "Last time the resource was updated",
                    "example": "2024-01-17T20:14:01.048145Z"
                },
                "date": {
                    "type": "string",
                    "description": "Date of the transaction",
                    "example": "2024-01-15"
                },
                "type": {
                    "type": "string",
                    "enum": [
                        "INCOME",
                        "EXPENSE"
                    ],
                    "description": "INCOME or EXPENSE",
                    "example": "EXPENSE"
                },
                "amount": {
                    "type": "string",
                    "description": "Amount in the original currency",
                    "example": "12.50"
                },
                "currency": {
                    "type": "string",
                    "description": "ISO 4217 code of the original currency",
                    "example": "USD"
                },
                "conversionRate": {
                    "type": "string",
                    "description": "Rate to the base currency. Required unless the currency is the base currency",
                    "example": "1300"
                },
                "categoryId": {
                    "type": "string",
                    "format": "uuid",
                    "description": "ID of the category",
                    "example": "a6c8ff40-23a2-4b1c-8c71-5be40bb5a2ac"
                },
                "memo": {
                    "type": "string",
                    "description": "A memo",
                    "example": "Lunch",
                    "default": ""
                },
                "tagIds": {
                    "type": "array",
                    "items": {
                        "type": "string",
                        "format": "uuid"
                    },
                    "description": "IDs of the tags attached to the transaction"
                },
                "baseAmount": {
                    "type": "string",
                    "description": "Amount converted to the base currency",
                    "example": "16250"
                },
                "categoryName": {
                    "type": "string",
                    "description": "Name of the category",
                    "example": "Food"
                },
                "tags": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/v1.TransactionTag"
                    },
                    "description": "Tags of the transaction, ordered by name"
                },
                "links": {
                    "$ref": "#/definitions/v1.TransactionLinks"
                }
            }
        },
        "v1.TransactionCreateResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string",
                    "description": "The error, if any occurred",
                    "example": "the specified resource ID is not a valid UUID"
                },
                "data": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/v1.TransactionResponse"
                    },
                    "description": "List of created Transactions"
                }
            }
        },
        "v1.TransactionEditable": {
            "type": "object",
            "required": [
                "type",
                "currency"
            ],
            "properties": {
                "date": {
                    "type": "string",
                    "description": "Date of the transaction",
                    "example": "2024-01-15"
                },
                "type": {
                    "type": "string",
                    "enum": [
                        "INCOME",
                        "EXPENSE"
                    ],
                    "description": "INCOME or EXPENSE",
                    "example": "EXPENSE"
                },
                "amount": {
                    "type": "string",
                    "description": "Amount in the original currency",
                    "example": "12.50"
                },
                "currency": {
                    "type": "string",
                    "description": "ISO 4217 code of the original currency",
                    "example": "USD"
                },
                "conversionRate": {
                    "type": "string",
                    "description": "Rate to the base currency. Required unless the currency is the base currency",
                    "example": "1300"
                },
                "categoryId": {
                    "type": "string",
                    "format": "uuid",
                    "description": "ID of the category",
                    "example": "a6c8ff40-23a2-4b1c-8c71-5be40bb5a2ac"
                },
                "memo": {
                    "type": "string",
                    "description": "A memo",
                    "example": "Lunch",
                    "default": ""
                },
                "tagIds": {
                    "type": "array",
                    "items": {
                        "type": "string",
                        "format": "uuid"
                    },
                    "description": "IDs of the tags attached to the transaction"
                }
            }
        },
        "v1.TransactionLinks": {
            "type": "object",
            "properties": {
                "self": {
                    "type": "string",
                    "description": "The transaction itself",
                    "example": "https://example.com/api/v1/transactions/d430d7c3-d14c-4712-9336-ee56965a6673"
                },
                "category": {
                    "type": "string",
                    "description": "The category of the transaction",
                    "example": "https://example.com/api/v1/categories/a6c8ff40-23a2-4b1c-8c71-5be40bb5a2ac"
                },
                "month": {
                    "type": "string",
                    "description": "The monthly summary for the month of the transaction",
                    "example": "https://example.com/api/v1/months/2024-01"
                }
            }
        },
        "v1.TransactionListResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/v1.Transaction"
                    },
                    "description": "List of transactions"
                },
                "error": {
                    "type": "string",
                    "description": "The error, if any occurred",
                    "example": "the specified resource ID is not a valid UUID"
                },
                "pagination": {
                    "description": "Pagination information",
                    "allOf": [
                        {
                            "$ref": "#/definitions/v1.Pagination"
                        }
                    ]
                }
            }
        },
        "v1.TransactionResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string",
                    "description": "The error, if any occurred for this transaction",
                    "example": "the specified resource ID is not a valid UUID"
                },
                "data": {
                    "description": "The Transaction data, if creation was successful",
                    "allOf": [
                        {
                            "$ref": "#/definitions/v1.Transaction"
                        }
                    ]
                }
            }
        },
        "v1.TransactionTag": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string",
                    "format": "uuid",
                    "description": "ID of the tag",
                    "example": "d2525c22-ac2d-4d0a-8bb3-1ba2e1a2e3d6"
                },
                "name": {
                    "type": "string",
                    "description": "Name of the tag",
                    "example": "vacation"
                },
                "color": {
                    "type": "string",
                    "description": "Display color of the tag",
                    "example": "#ff9800"
                }
            }
        },
        "v1.httpError": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string",
                    "example": "the specified resource ID is not a valid UUID"
                }
            }
        },
        "version.Build": {
            "type": "object",
            "properties": {
                "version": {
                    "type": "string",
                    "description": "Release of the cashlog backend, 0.0.0 for development builds",
                    "example": "1.1.0"
                },
                "goVersion": {
                    "type": "string",
                    "description": "Go toolchain the backend was built with",
                    "example": "go1.25.5"
                }
            }
        },
        "version.Response": {
            "type": "object",
            "properties": {
                "data": {
                    "description": "Build information of the running backend",
                    "allOf": [
                        {
                            "$ref": "#/definitions/version.Build"
                        }
                    ]
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "",
	Host:             "",
	BasePath:         "",
	Schemes:          []string{},
	Title:            "cashlog",
	Description:      "",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
