package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS subscription_overrides (
    merchant         TEXT PRIMARY KEY,
    state            TEXT NOT NULL,
    updated_at       TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS wants (
    id               TEXT PRIMARY KEY,
    description      TEXT NOT NULL,
    amount           TEXT NOT NULL,
    reason           TEXT,
    requested_date   TEXT NOT NULL,
    cooling_off_days INTEGER NOT NULL,
    status           TEXT NOT NULL,
    resolved_date    TEXT,
    notes            TEXT
);

CREATE TABLE IF NOT EXISTS restock_items (
    id               TEXT PRIMARY KEY,
    name             TEXT NOT NULL,
    merchant         TEXT,
    category         TEXT,
    typical_interval REAL NOT NULL,
    interval_stddev  REAL NOT NULL,
    last_amount      TEXT NOT NULL,
    last_purchase    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS restock_purchases (
    item_id          TEXT NOT NULL REFERENCES restock_items(id) ON DELETE CASCADE,
    purchase_date    TEXT NOT NULL,
    PRIMARY KEY (item_id, purchase_date)
);

CREATE TABLE IF NOT EXISTS debt_accounts (
    name             TEXT PRIMARY KEY,
    balance          TEXT NOT NULL,
    apr              TEXT NOT NULL,
    minimum_payment  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_wants_status ON wants(status);
`
