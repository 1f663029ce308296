package outbox

const activityRecordedSchema = `{
  "type": "object",
  "title": "ActivityRecorded",
  "properties": {
    "record_id": {"type": "string"},
    "user_id": {"type": "string"},
    "category": {"type": "string", "enum": ["task", "mood", "focus", "journal", "routine", "meditation"]},
    "title": {"type": "string"},
    "occurred_at": {"type": "string", "format": "date-time"},
    "version": {"type": "string"}
  },
  "required": ["record_id", "user_id", "category", "occurred_at", "version"],
  "additionalProperties": false
}`

const postCreatedSchema = `{
  "type": "object",
  "title": "PostCreated",
  "properties": {
    "post_id": {"type": "string"},
    "user_id": {"type": "string"},
    "content": {"type": "string"},
    "created_at": {"type": "string", "format": "date-time"},
    "version": {"type": "string"}
  },
  "required": ["post_id", "user_id", "content", "created_at", "version"],
  "additionalProperties": false
}`
