package output

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/rafabd1/LiteFinder/core/secret"
	"github.com/rafabd1/LiteFinder/utils"
)

// LoadRecords reads the JSON array of records stored at path.
func LoadRecords(path string) ([]secret.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, utils.NewError(utils.StoreReadError, "failed to read "+path, err)
	}

	var records []secret.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, utils.NewError(utils.StoreReadError, "failed to parse "+path, err)
	}

	return records, nil
}

// encodeRecords renders records as an indented JSON array. HTML characters
// are kept verbatim since findings routinely contain them.
func encodeRecords(records []secret.Record) ([]byte, error) {
	if records == nil {
		records = []secret.Record{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeRecords(path string, records []secret.Record) error {
	data, err := encodeRecords(records)
	if err != nil {
		return utils.NewError(utils.StoreWriteError, "failed to encode records", err)
	}
	if err := utils.WriteFileAtomic(path, data, 0o644); err != nil {
		return utils.NewError(utils.StoreWriteError, "failed to write "+path, err)
	}
	return nil
}
