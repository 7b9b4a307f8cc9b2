package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Payroll Admin API",
        "description": "Configuration governance and payroll calculation backend",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Employee authentication"},
        {"name": "Payroll Configuration", "description": "DRAFT/APPROVED/REJECTED governance over configuration kinds"},
        {"name": "Company Settings", "description": "Company-wide settings singleton"},
        {"name": "Calculations", "description": "Deterministic payroll calculators"},
        {"name": "Observability", "description": "Metrics and health"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate an employee",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Auth"],
                "summary": "Current employee claims",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/payroll-config/{kind}": {
            "get": {
                "tags": ["Payroll Configuration"],
                "summary": "List configuration items of a kind",
                "parameters": [
                    {"name": "kind", "in": "path", "type": "string", "required": true},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Payroll Configuration"],
                "summary": "Create a configuration item as DRAFT",
                "parameters": [
                    {"name": "kind", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateConfigRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Duplicate name"},
                    "422": {"description": "Invalid range"}
                }
            }
        },
        "/payroll-config/{kind}/{id}": {
            "get": {
                "tags": ["Payroll Configuration"],
                "summary": "Get a configuration item",
                "parameters": [
                    {"name": "kind", "in": "path", "type": "string", "required": true},
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "patch": {
                "tags": ["Payroll Configuration"],
                "summary": "Update a DRAFT configuration item",
                "parameters": [
                    {"name": "kind", "in": "path", "type": "string", "required": true},
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateConfigRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Not in DRAFT"}
                }
            },
            "delete": {
                "tags": ["Payroll Configuration"],
                "summary": "Delete a DRAFT configuration item",
                "parameters": [
                    {"name": "kind", "in": "path", "type": "string", "required": true},
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "409": {"description": "Not in DRAFT"}
                }
            }
        },
        "/payroll-config/{kind}/{id}/approve": {
            "post": {
                "tags": ["Payroll Configuration"],
                "summary": "Approve a DRAFT configuration item",
                "parameters": [
                    {"name": "kind", "in": "path", "type": "string", "required": true},
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/DecisionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Self approval"},
                    "409": {"description": "Not in DRAFT"},
                    "422": {"description": "Invalid approver"}
                }
            }
        },
        "/payroll-config/{kind}/{id}/reject": {
            "post": {
                "tags": ["Payroll Configuration"],
                "summary": "Reject a DRAFT configuration item",
                "parameters": [
                    {"name": "kind", "in": "path", "type": "string", "required": true},
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/DecisionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/company-settings": {
            "get": {
                "tags": ["Company Settings"],
                "summary": "Get company settings",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "patch": {
                "tags": ["Company Settings"],
                "summary": "Update company settings while DRAFT",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateCompanySettingsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/company-settings/approve": {
            "post": {
                "tags": ["Company Settings"],
                "summary": "Approve the DRAFT company settings",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/DecisionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/company-settings/reject": {
            "post": {
                "tags": ["Company Settings"],
                "summary": "Reject the DRAFT company settings",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/DecisionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/calculations/insurance-contribution": {
            "post": {
                "tags": ["Calculations"],
                "summary": "Calculate insurance contributions against a bracket",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ContributionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Bracket not found"},
                    "409": {"description": "Bracket not approved"}
                }
            }
        },
        "/calculations/termination-entitlements": {
            "post": {
                "tags": ["Calculations"],
                "summary": "Calculate termination entitlements from approved benefits",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TerminationRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/calculations/payslip-preview": {
            "post": {
                "tags": ["Calculations"],
                "summary": "Preview net pay from approved brackets",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PayslipPreviewRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/metrics/snapshot": {
            "get": {
                "tags": ["Observability"],
                "summary": "Application-level metrics snapshot",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "CreateConfigRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string"},
                "rate": {"type": "number"},
                "min_salary": {"type": "number"},
                "max_salary": {"type": "number"},
                "employee_rate": {"type": "number"},
                "employer_rate": {"type": "number"},
                "amount": {"type": "number"},
                "base_salary": {"type": "number"},
                "gross_salary": {"type": "number"},
                "base_amount": {"type": "number"},
                "category": {"type": "string"},
                "taxable": {"type": "boolean"},
                "description": {"type": "string"}
            }
        },
        "UpdateConfigRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "rate": {"type": "number"},
                "min_salary": {"type": "number"},
                "max_salary": {"type": "number"},
                "employee_rate": {"type": "number"},
                "employer_rate": {"type": "number"},
                "amount": {"type": "number"},
                "base_salary": {"type": "number"},
                "gross_salary": {"type": "number"},
                "base_amount": {"type": "number"},
                "category": {"type": "string"},
                "taxable": {"type": "boolean"},
                "description": {"type": "string"}
            }
        },
        "DecisionRequest": {
            "type": "object",
            "required": ["approver_employee_id"],
            "properties": {
                "approver_employee_id": {"type": "string"},
                "reason": {"type": "string"}
            }
        },
        "UpdateCompanySettingsRequest": {
            "type": "object",
            "properties": {
                "pay_date": {"type": "integer"},
                "time_zone": {"type": "string"},
                "currency": {"type": "string"}
            }
        },
        "ContributionRequest": {
            "type": "object",
            "required": ["bracket_id", "salary"],
            "properties": {
                "bracket_id": {"type": "string"},
                "salary": {"type": "number"}
            }
        },
        "TerminationRequest": {
            "type": "object",
            "required": ["last_salary"],
            "properties": {
                "last_salary": {"type": "number"},
                "years_of_service": {"type": "number"},
                "reason": {"type": "string", "enum": ["resignation", "termination"]},
                "benefit_ids": {"type": "array", "items": {"type": "string"}}
            }
        },
        "PayslipPreviewRequest": {
            "type": "object",
            "required": ["salary"],
            "properties": {
                "salary": {"type": "number"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
