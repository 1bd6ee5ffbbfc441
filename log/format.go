// Copyright 2017 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package log

import (
	"bytes"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	timeFormat     = "2006-01-02T15:04:05-0700"
	termTimeFormat = "01-02|15:04:05.000"
	termMsgJust    = 40
)

func levelColor(level slog.Level) int {
	switch {
	case level >= LevelCrit:
		return 35
	case level >= LevelError:
		return 31
	case level >= LevelWarn:
		return 33
	case level >= LevelInfo:
		return 32
	case level >= LevelDebug:
		return 36
	default:
		return 34
	}
}

func (h *TerminalHandler) format(buf []byte, r slog.Record, usecolor bool) []byte {
	b := bytes.NewBuffer(buf)
	lvl := LevelAlignedString(r.Level)
	if usecolor {
		fmt.Fprintf(b, "\x1b[%dm%s\x1b[0m", levelColor(r.Level), lvl)
	} else {
		b.WriteString(lvl)
	}
	b.WriteString("[")
	b.WriteString(r.Time.Format(termTimeFormat))
	b.WriteString("] ")
	b.WriteString(r.Message)

	// try to justify the log output for short messages
	length := utf8.RuneCountInString(r.Message)
	if r.NumAttrs()+len(h.attrs) > 0 && length < termMsgJust {
		b.Write(bytes.Repeat([]byte{' '}, termMsgJust-length))
	}

	h.formatAttributes(b, r, usecolor)
	return b.Bytes()
}

func (h *TerminalHandler) formatAttributes(b *bytes.Buffer, r slog.Record, usecolor bool) {
	writeAttr := func(attr slog.Attr) {
		b.WriteByte(' ')
		if usecolor {
			fmt.Fprintf(b, "\x1b[%dm%s\x1b[0m=", levelColor(r.Level), attr.Key)
		} else {
			b.WriteString(attr.Key)
			b.WriteByte('=')
		}
		b.WriteString(formatSlogValue(attr.Value))
	}
	for _, attr := range h.attrs {
		writeAttr(attr)
	}
	r.Attrs(func(attr slog.Attr) bool {
		writeAttr(attr)
		return true
	})
	b.WriteByte('\n')
}

func formatSlogValue(v slog.Value) string {
	attr := builtinReplace(nil, slog.Any("", v.Any()), true)
	switch attr.Value.Kind() {
	case slog.KindInt64:
		return strconv.FormatInt(attr.Value.Int64(), 10)
	case slog.KindUint64:
		return strconv.FormatUint(attr.Value.Uint64(), 10)
	case slog.KindFloat64:
		return strconv.FormatFloat(attr.Value.Float64(), 'f', 3, 64)
	case slog.KindBool:
		return strconv.FormatBool(attr.Value.Bool())
	case slog.KindString:
		return escapeString(attr.Value.String())
	}
	if err, ok := v.Any().(error); ok {
		return escapeString(err.Error())
	}
	return escapeString(fmt.Sprintf("%+v", attr.Value.Any()))
}

// escapeString quotes values that would otherwise break key=value parsing.
func escapeString(s string) string {
	if s == "" {
		return `""`
	}
	if strings.ContainsAny(s, " =\"\t\r\n") {
		return strconv.Quote(s)
	}
	return s
}
