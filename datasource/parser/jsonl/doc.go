// Package jsonl parses JSON Lines DataSources. This parser uses https://github.com/tidwall/gjson to process data, extracting the fields declared by a Schema and ignoring everything else.
package jsonl
