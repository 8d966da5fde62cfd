package zosmf

import (
	"fmt"
	"regexp"
)

// DataType selects the representation used when reading or writing dataset
// and file content (the X-IBM-Data-Type header).
type DataType string

const (
	DataTypeText   DataType = "text"
	DataTypeBinary DataType = "binary"
	DataTypeRecord DataType = "record"
)

// ParseDataType converts a user-supplied string into a DataType.
func ParseDataType(s string) (DataType, error) {
	switch dataType := DataType(s); dataType {
	case DataTypeText, DataTypeBinary, DataTypeRecord:
		return dataType, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDataType, s)
	}
}

// MigratedRecall controls how migrated datasets are handled on access (the
// X-IBM-Migrated-Recall header).
type MigratedRecall string

const (
	MigratedRecallWait   MigratedRecall = "wait"
	MigratedRecallNoWait MigratedRecall = "nowait"
	MigratedRecallError  MigratedRecall = "error"
)

var recordRangePattern = regexp.MustCompile(`^(\d+)?-(\d+)?$`)

// RecordRange selects a subset of records for read operations (the
// X-IBM-Record-Range header), e.g. "0-249".
type RecordRange string

// NewRecordRange builds a range covering records start through end inclusive.
func NewRecordRange(start, end int) RecordRange {
	return RecordRange(fmt.Sprintf("%d-%d", start, end))
}

// Valid reports whether the range has the start-end shape z/OSMF accepts.
func (r RecordRange) Valid() bool {
	return recordRangePattern.MatchString(string(r))
}

// ListMeta is the pagination metadata z/OSMF attaches to restfiles list
// responses. TotalRows is only present when the request asked for a total.
type ListMeta struct {
	ReturnedRows int   `json:"returnedRows"        yaml:"returnedRows"`
	TotalRows    *int  `json:"totalRows,omitempty" yaml:"totalRows,omitempty"`
	MoreRows     *bool `json:"moreRows,omitempty"  yaml:"moreRows,omitempty"`
	JSONVersion  int   `json:"JSONversion"         yaml:"JSONversion"`
}

// Info describes the z/OSMF instance, from GET /zosmf/info.
type Info struct {
	APIVersion    string   `json:"api_version"     yaml:"api_version"`
	ZosVersion    string   `json:"zos_version"     yaml:"zos_version"`
	ZosmfVersion  string   `json:"zosmf_version"   yaml:"zosmf_version"`
	ZosmfHostname string   `json:"zosmf_hostname"  yaml:"zosmf_hostname"`
	ZosmfPort     string   `json:"zosmf_port"      yaml:"zosmf_port"`
	ZosmfSafRealm string   `json:"zosmf_saf_realm" yaml:"zosmf_saf_realm"`
	Plugins       []Plugin `json:"plugins"         yaml:"plugins"`
}

// Plugin describes one installed z/OSMF plugin.
type Plugin struct {
	Name    string `json:"pluginDefaultName"      yaml:"pluginDefaultName"`
	Version string `json:"pluginVersion"          yaml:"pluginVersion"`
	Status  string `json:"pluginStatus,omitempty" yaml:"pluginStatus,omitempty"`
}
