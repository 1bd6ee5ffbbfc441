// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

// events of committed transactions, in commit order
const eventTableSchema = `
CREATE TABLE IF NOT EXISTS event (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	txID BLOB(32) NOT NULL,
	eventIndex INTEGER NOT NULL,
	slot INTEGER NOT NULL,
	epoch INTEGER NOT NULL,
	unixTime INTEGER NOT NULL,
	program BLOB(32) NOT NULL,
	name TEXT NOT NULL,
	subject BLOB(32) NOT NULL,
	data TEXT NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS eventTxIndex ON event(txID, eventIndex);
CREATE INDEX IF NOT EXISTS eventEpochIndex ON event(epoch);
CREATE INDEX IF NOT EXISTS eventSubjectIndex ON event(subject);
CREATE INDEX IF NOT EXISTS eventNameIndex ON event(name);
`
