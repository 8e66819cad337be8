package history

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id             TEXT PRIMARY KEY,
    started_at     DATETIME NOT NULL,
    url_count      INTEGER NOT NULL DEFAULT 0,
    analyzed       INTEGER NOT NULL DEFAULT 0,
    avg_percentage REAL NOT NULL DEFAULT 0,
    level          TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);

CREATE TABLE IF NOT EXISTS results (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id     TEXT NOT NULL REFERENCES runs(id),
    position   INTEGER NOT NULL,
    url        TEXT NOT NULL,
    name       TEXT NOT NULL DEFAULT '',
    category   TEXT NOT NULL,
    score      REAL NOT NULL DEFAULT 0,
    max_score  REAL NOT NULL DEFAULT 0,
    net_score  REAL NOT NULL DEFAULT 0,
    fallback   BOOLEAN NOT NULL DEFAULT 0,
    error      TEXT NOT NULL DEFAULT '',
    size_mb    REAL NOT NULL DEFAULT 0,
    size_json  TEXT NOT NULL DEFAULT '{}'
);

CREATE INDEX IF NOT EXISTS idx_results_run ON results(run_id);
CREATE INDEX IF NOT EXISTS idx_results_url ON results(url);
`
