package validateleaddata

// intakeSchema is the JSON Schema for the raw intake payload. Numeric
// fields arrive as currency strings from the form, so they validate as
// string-or-number here and are normalized afterwards.
const intakeSchema = `{
  "type": "object",
  "required": ["first_name", "last_name", "email", "gross_annual_income"],
  "properties": {
    "first_name": {"type": "string", "minLength": 1},
    "last_name": {"type": "string", "minLength": 1},
    "email": {"type": "string", "format": "email"},
    "phone": {"type": "string"},
    "street_address": {"type": "string"},
    "city": {"type": "string"},
    "state": {"type": "string"},
    "zip": {"type": "string"},
    "time_at_address": {"type": "string"},
    "coborrower_status": {"type": "string"},
    "coborrower_first_name": {"type": "string"},
    "coborrower_last_name": {"type": "string"},
    "coborrower_email": {"type": "string"},
    "gross_annual_income": {"type": ["string", "number"]},
    "coborrower_gross_annual_income": {"type": ["string", "number"]},
    "employment_type": {"type": "string"},
    "coborrower_employment_type": {"type": "string"},
    "monthly_debt_payments": {"type": "string"},
    "credit_score_range": {"type": "string"},
    "down_payment_saved": {"type": ["string", "number"]},
    "down_payment_sources": {"type": "array", "items": {"type": "string"}},
    "timeline": {"type": "string"},
    "target_counties": {"type": "array", "items": {"type": "string"}},
    "first_time_buyer": {"type": "string"},
    "va_eligible": {"type": "string"},
    "current_housing": {"type": "string"},
    "agent_slug": {"type": "string"}
  }
}`
