package db

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- Pages: one row per distinct URL ever processed
CREATE TABLE IF NOT EXISTS pages (
    page_id INTEGER PRIMARY KEY AUTOINCREMENT,
    url TEXT NOT NULL UNIQUE,
    domain TEXT NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_pages_domain ON pages(domain);

-- Runs: every pipeline execution for a page
CREATE TABLE IF NOT EXISTS runs (
    run_id INTEGER PRIMARY KEY AUTOINCREMENT,
    page_id INTEGER NOT NULL,
    status TEXT NOT NULL,           -- found, empty, unreachable, failed
    reason TEXT,
    classifier TEXT NOT NULL,
    paragraph_count INTEGER DEFAULT 0,
    ingredient_count INTEGER DEFAULT 0,
    instruction_count INTEGER DEFAULT 0,
    title TEXT,
    language TEXT,
    recipe_text TEXT NOT NULL,      -- rendered display format
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (page_id) REFERENCES pages(page_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_runs_page ON runs(page_id);
CREATE INDEX IF NOT EXISTS idx_runs_status ON runs(status);

-- Run lines: the assembled recipe, one row per line, in output order
CREATE TABLE IF NOT EXISTS run_lines (
    run_id INTEGER NOT NULL,
    kind TEXT NOT NULL,             -- ingredient, instruction
    position INTEGER NOT NULL,
    text TEXT NOT NULL,
    PRIMARY KEY (run_id, kind, position),
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);
`
