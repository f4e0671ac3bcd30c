package store

const schema = `
CREATE TABLE IF NOT EXISTS topics (
  id   INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS subtopics (
  id          INTEGER PRIMARY KEY AUTOINCREMENT,
  topic_id    INTEGER NOT NULL REFERENCES topics(id) ON DELETE CASCADE,
  name        TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  UNIQUE(topic_id, name)
);

CREATE TABLE IF NOT EXISTS questions (
  id             INTEGER PRIMARY KEY AUTOINCREMENT,
  external_id    TEXT NOT NULL UNIQUE,
  subtopic_id    INTEGER NOT NULL REFERENCES subtopics(id) ON DELETE CASCADE,
  question       TEXT NOT NULL,
  question_type  TEXT NOT NULL DEFAULT 'multiple_choice',
  correct_answer TEXT NOT NULL DEFAULT '',
  correct_index  INTEGER NOT NULL DEFAULT 0,
  explanation    TEXT NOT NULL DEFAULT '',
  learn          TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS options (
  question_id  INTEGER NOT NULL REFERENCES questions(id) ON DELETE CASCADE,
  option_index INTEGER NOT NULL,
  option_text  TEXT NOT NULL,
  PRIMARY KEY (question_id, option_index)
);

CREATE TABLE IF NOT EXISTS llm_events (
  id            INTEGER PRIMARY KEY AUTOINCREMENT,
  created_at    INTEGER NOT NULL,
  provider      TEXT NOT NULL,
  model         TEXT NOT NULL,
  purpose       TEXT NOT NULL,
  session_id    TEXT NOT NULL DEFAULT '',
  input_tokens  INTEGER NOT NULL DEFAULT 0,
  output_tokens INTEGER NOT NULL DEFAULT 0,
  latency_ms    INTEGER NOT NULL DEFAULT 0,
  success       INTEGER NOT NULL,
  error_message TEXT NOT NULL DEFAULT ''
);
`
