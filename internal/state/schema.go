package state

// Statements are executed one at a time; the mysql driver rejects
// multi-statement Exec by default.
var schemaSQLite = []string{`
CREATE TABLE IF NOT EXISTS packages (
    name         TEXT PRIMARY KEY,
    version      TEXT,
    installed_at INTEGER NOT NULL,
    updated_at   INTEGER NOT NULL
)`, `
CREATE TABLE IF NOT EXISTS operations (
    id        INTEGER PRIMARY KEY AUTOINCREMENT,
    package   TEXT NOT NULL,
    action    TEXT NOT NULL,
    exit_code INTEGER NOT NULL,
    timestamp INTEGER NOT NULL,
    detail    TEXT
)`}

// MariaDB spells auto-increment differently and needs sized key columns.
var schemaMySQL = []string{`
CREATE TABLE IF NOT EXISTS packages (
    name         VARCHAR(255) PRIMARY KEY,
    version      VARCHAR(255),
    installed_at BIGINT NOT NULL,
    updated_at   BIGINT NOT NULL
)`, `
CREATE TABLE IF NOT EXISTS operations (
    id        BIGINT PRIMARY KEY AUTO_INCREMENT,
    package   VARCHAR(255) NOT NULL,
    action    VARCHAR(32) NOT NULL,
    exit_code INT NOT NULL,
    timestamp BIGINT NOT NULL,
    detail    TEXT
)`}
