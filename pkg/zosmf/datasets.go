package zosmf

import (
	"context"
	"net/http"
	"net/url"
)

// Dataset is one entry of a dataset list. Field availability depends on the
// attribute mode the list was requested with: name-only listings populate
// Name alone, base listings populate the catalog attributes. z/OSMF reports
// most numeric attributes as strings.
type Dataset struct {
	Name               string `json:"dsname"          yaml:"dsname"`
	BlockSize          string `json:"blksz,omitempty" yaml:"blksz,omitempty"`
	Catalog            string `json:"catnm,omitempty" yaml:"catnm,omitempty"`
	CreationDate       string `json:"cdate,omitempty" yaml:"cdate,omitempty"`
	DeviceType         string `json:"dev,omitempty"   yaml:"dev,omitempty"`
	Type               string `json:"dsntp,omitempty" yaml:"dsntp,omitempty"`
	Organization       string `json:"dsorg,omitempty" yaml:"dsorg,omitempty"`
	ExpirationDate     string `json:"edate,omitempty" yaml:"edate,omitempty"`
	ExtentsUsed        string `json:"extx,omitempty"  yaml:"extx,omitempty"`
	RecordLength       string `json:"lrecl,omitempty" yaml:"lrecl,omitempty"`
	Migrated           string `json:"migr,omitempty"  yaml:"migr,omitempty"`
	MultiVolume        string `json:"mvol,omitempty"  yaml:"mvol,omitempty"`
	SpaceOverflow      string `json:"ovf,omitempty"   yaml:"ovf,omitempty"`
	LastReferencedDate string `json:"rdate,omitempty" yaml:"rdate,omitempty"`
	RecordFormat       string `json:"recfm,omitempty" yaml:"recfm,omitempty"`
	SizeInTracks       string `json:"sizex,omitempty" yaml:"sizex,omitempty"`
	SpaceUnits         string `json:"spacu,omitempty" yaml:"spacu,omitempty"`
	PercentUsed        string `json:"used,omitempty"  yaml:"used,omitempty"`
	Volume             string `json:"vol,omitempty"   yaml:"vol,omitempty"`
	Volumes            string `json:"vols,omitempty"  yaml:"vols,omitempty"`
}

// IsMigrated reports whether the catalog marks the dataset as migrated.
func (d *Dataset) IsMigrated() bool {
	return d.Migrated == "YES" || d.Volume == "MIGRAT"
}

// DatasetList is the response of a dataset list operation. Items preserve
// server order.
type DatasetList struct {
	ListMeta `yaml:",inline"`

	Items         []Dataset `json:"items" yaml:"items"`
	TransactionID string    `json:"-"     yaml:"-"`
}

// Member is one entry of a partitioned dataset member list.
type Member struct {
	Name             string `json:"member"           yaml:"member"`
	Version          int    `json:"vers,omitempty"   yaml:"vers,omitempty"`
	Modification     int    `json:"mod,omitempty"    yaml:"mod,omitempty"`
	CreationDate     string `json:"c4date,omitempty" yaml:"c4date,omitempty"`
	ModificationDate string `json:"m4date,omitempty" yaml:"m4date,omitempty"`
	CurrentLines     int    `json:"cnorc,omitempty"  yaml:"cnorc,omitempty"`
	InitialLines     int    `json:"inorc,omitempty"  yaml:"inorc,omitempty"`
	ModifiedLines    int    `json:"mnorc,omitempty"  yaml:"mnorc,omitempty"`
	ModificationTime string `json:"mtime,omitempty"  yaml:"mtime,omitempty"`
	UserID           string `json:"user,omitempty"   yaml:"user,omitempty"`
	SCLM             string `json:"sclm,omitempty"   yaml:"sclm,omitempty"`
}

// MemberList is the response of a member list operation.
type MemberList struct {
	ListMeta `yaml:",inline"`

	Items         []Member `json:"items" yaml:"items"`
	TransactionID string   `json:"-"     yaml:"-"`
}

// DatasetContent is the result of a dataset read.
type DatasetContent struct {
	Data          []byte
	Etag          string
	SessionRef    string
	TransactionID string
}

// String returns the content as text.
func (c *DatasetContent) String() string {
	return string(c.Data)
}

// WriteResult carries the headers returned by a successful write.
type WriteResult struct {
	Etag          string
	TransactionID string
}

// DatasetCreateRequest holds the allocation parameters for a new dataset.
// Zero-valued fields are omitted so z/OSMF defaults apply.
type DatasetCreateRequest struct {
	Volume              string `json:"volser,omitempty"  yaml:"volser,omitempty"`
	DeviceType          string `json:"unit,omitempty"    yaml:"unit,omitempty"`
	Organization        string `json:"dsorg,omitempty"   yaml:"dsorg,omitempty"`
	SpaceAllocationUnit string `json:"alcunit,omitempty" yaml:"alcunit,omitempty"`
	PrimarySpace        int    `json:"primary,omitempty" yaml:"primary,omitempty"`
	SecondarySpace      int    `json:"secondary,omitempty" yaml:"secondary,omitempty"`
	DirectoryBlocks     int    `json:"dirblk,omitempty"  yaml:"dirblk,omitempty"`
	AverageBlockSize    int    `json:"avgblk,omitempty"  yaml:"avgblk,omitempty"`
	RecordFormat        string `json:"recfm,omitempty"   yaml:"recfm,omitempty"`
	BlockSize           int    `json:"blksize,omitempty" yaml:"blksize,omitempty"`
	RecordLength        int    `json:"lrecl,omitempty"   yaml:"lrecl,omitempty"`
	StorageClass        string `json:"storclass,omitempty" yaml:"storclass,omitempty"`
	ManagementClass     string `json:"mgntclass,omitempty" yaml:"mgntclass,omitempty"`
	DataClass           string `json:"dataclass,omitempty" yaml:"dataclass,omitempty"`
	DatasetType         string `json:"dsntype,omitempty" yaml:"dsntype,omitempty"`
	ModelDataset        string `json:"like,omitempty"    yaml:"like,omitempty"`
}

// DatasetPath builds /zosmf/restfiles/ds/{-(volser)/}{name}({member}) per the
// z/OSMF path convention for volume- and member-qualified dataset names.
func DatasetPath(volume, dataset, member string) string {
	path := "/zosmf/restfiles/ds/"
	if volume != "" {
		path += "-(" + url.PathEscape(volume) + ")/"
	}

	path += url.PathEscape(dataset)
	if member != "" {
		path += "(" + url.PathEscape(member) + ")"
	}

	return path
}

// DatasetListBuilder configures a dataset list operation.
type DatasetListBuilder struct {
	req          Builder[DatasetList]
	pattern      string
	attributes   string
	includeTotal bool
}

// NewDatasetListBuilder creates a list builder for the given name pattern.
func NewDatasetListBuilder(exec Executor, pattern string) DatasetListBuilder {
	return DatasetListBuilder{
		pattern: pattern,
		req: NewBuilder[DatasetList](exec, http.MethodGet, "/zosmf/restfiles/ds").
			Query("dslevel", pattern).
			Parser(parseDatasetList),
	}
}

// Volume restricts the listing to datasets on the given volume serial.
func (b DatasetListBuilder) Volume(volume string) DatasetListBuilder {
	b.req = b.req.Query("volser", volume)

	return b
}

// Start resumes the listing at the given dataset name.
func (b DatasetListBuilder) Start(name string) DatasetListBuilder {
	b.req = b.req.Query("start", name)

	return b
}

// MaxItems caps the number of returned entries.
func (b DatasetListBuilder) MaxItems(n int) DatasetListBuilder {
	b.req = b.req.HeaderInt("X-IBM-Max-Items", n)

	return b
}

// BaseAttributes requests the full base attribute set for each entry instead
// of names only.
func (b DatasetListBuilder) BaseAttributes() DatasetListBuilder {
	b.attributes = "base"

	return b
}

// VolumeAttributes requests name and volume for each entry.
func (b DatasetListBuilder) VolumeAttributes() DatasetListBuilder {
	b.attributes = "vol"

	return b
}

// IncludeTotal asks the server to report the total row count.
func (b DatasetListBuilder) IncludeTotal() DatasetListBuilder {
	b.includeTotal = true

	return b
}

// Execute issues the list request.
func (b DatasetListBuilder) Execute(ctx context.Context) (*DatasetList, error) {
	if b.pattern == "" {
		return nil, ErrPatternRequired
	}

	req := b.req
	if attrs := attributesHeader(b.attributes, b.includeTotal); attrs != "" {
		req = req.Header("X-IBM-Attributes", attrs)
	}

	return req.Execute(ctx)
}

func attributesHeader(attributes string, includeTotal bool) string {
	if attributes == "" && !includeTotal {
		return ""
	}

	if attributes == "" {
		attributes = "dsname"
	}

	if includeTotal {
		attributes += ",total"
	}

	return attributes
}

func parseDatasetList(resp *Response) (*DatasetList, error) {
	list, err := ParseJSON[DatasetList](resp)
	if err != nil {
		return nil, err
	}

	list.TransactionID = resp.TransactionID()

	return list, nil
}

// MemberListBuilder configures a member list operation on a partitioned
// dataset.
type MemberListBuilder struct {
	req Builder[MemberList]
}

// NewMemberListBuilder creates a member list builder for the given dataset.
func NewMemberListBuilder(exec Executor, dataset string) MemberListBuilder {
	return MemberListBuilder{
		req: NewBuilder[MemberList](exec, http.MethodGet, DatasetPath("", dataset, "")+"/member").
			Parser(parseMemberList),
	}
}

// Start resumes the listing at the given member name.
func (b MemberListBuilder) Start(member string) MemberListBuilder {
	b.req = b.req.Query("start", member)

	return b
}

// Pattern filters member names with an ISPF-style pattern.
func (b MemberListBuilder) Pattern(pattern string) MemberListBuilder {
	b.req = b.req.Query("pattern", pattern)

	return b
}

// MaxItems caps the number of returned entries.
func (b MemberListBuilder) MaxItems(n int) MemberListBuilder {
	b.req = b.req.HeaderInt("X-IBM-Max-Items", n)

	return b
}

// MigratedRecall controls recall behavior if the dataset is migrated.
func (b MemberListBuilder) MigratedRecall(mode MigratedRecall) MemberListBuilder {
	b.req = b.req.Header("X-IBM-Migrated-Recall", string(mode))

	return b
}

// BaseAttributes requests full statistics for each member.
func (b MemberListBuilder) BaseAttributes() MemberListBuilder {
	b.req = b.req.Header("X-IBM-Attributes", "base")

	return b
}

// Execute issues the list request.
func (b MemberListBuilder) Execute(ctx context.Context) (*MemberList, error) {
	return b.req.Execute(ctx)
}

func parseMemberList(resp *Response) (*MemberList, error) {
	list, err := ParseJSON[MemberList](resp)
	if err != nil {
		return nil, err
	}

	list.TransactionID = resp.TransactionID()

	return list, nil
}

// DatasetReadBuilder configures a dataset read operation.
type DatasetReadBuilder struct {
	exec    Executor
	dataset string
	volume  string
	member  string
	req     Builder[DatasetContent]
}

// NewDatasetReadBuilder creates a read builder for the given dataset.
func NewDatasetReadBuilder(exec Executor, dataset string) DatasetReadBuilder {
	return DatasetReadBuilder{
		exec:    exec,
		dataset: dataset,
		req:     NewBuilder[DatasetContent](exec, http.MethodGet, "").Parser(parseContent),
	}
}

// Member reads one member of a partitioned dataset.
func (b DatasetReadBuilder) Member(member string) DatasetReadBuilder {
	b.member = member

	return b
}

// Volume reads the dataset from a specific volume serial.
func (b DatasetReadBuilder) Volume(volume string) DatasetReadBuilder {
	b.volume = volume

	return b
}

// DataType selects text, binary, or record mode.
func (b DatasetReadBuilder) DataType(dataType DataType) DatasetReadBuilder {
	b.req = b.req.Header("X-IBM-Data-Type", string(dataType))

	return b
}

// RecordRange limits the read to a range of records.
func (b DatasetReadBuilder) RecordRange(rng RecordRange) DatasetReadBuilder {
	b.req = b.req.Header("X-IBM-Record-Range", string(rng))

	return b
}

// MigratedRecall controls recall behavior if the dataset is migrated.
func (b DatasetReadBuilder) MigratedRecall(mode MigratedRecall) DatasetReadBuilder {
	b.req = b.req.Header("X-IBM-Migrated-Recall", string(mode))

	return b
}

// IfNoneMatch makes the read conditional on the content having changed since
// the given Etag.
func (b DatasetReadBuilder) IfNoneMatch(etag string) DatasetReadBuilder {
	b.req = b.req.Header("If-None-Match", etag)

	return b
}

// Search filters returned records to those matching the given text.
func (b DatasetReadBuilder) Search(text string) DatasetReadBuilder {
	b.req = b.req.Query("search", text)

	return b
}

// Execute issues the read request.
func (b DatasetReadBuilder) Execute(ctx context.Context) (*DatasetContent, error) {
	req := b.req
	req.method = http.MethodGet
	req.path = DatasetPath(b.volume, b.dataset, b.member)

	return req.Execute(ctx)
}

func parseContent(resp *Response) (*DatasetContent, error) {
	return &DatasetContent{
		Data:          resp.Body,
		Etag:          resp.Etag(),
		SessionRef:    resp.SessionRef(),
		TransactionID: resp.TransactionID(),
	}, nil
}

// DatasetWriteBuilder configures a dataset write operation.
type DatasetWriteBuilder struct {
	exec    Executor
	dataset string
	volume  string
	member  string
	req     Builder[WriteResult]
	data    []byte
}

// NewDatasetWriteBuilder creates a write builder replacing the dataset's
// content with data.
func NewDatasetWriteBuilder(exec Executor, dataset string, data []byte) DatasetWriteBuilder {
	return DatasetWriteBuilder{
		exec:    exec,
		dataset: dataset,
		data:    data,
		req:     NewBuilder[WriteResult](exec, http.MethodPut, "").Parser(parseWriteResult),
	}
}

// Member writes one member of a partitioned dataset.
func (b DatasetWriteBuilder) Member(member string) DatasetWriteBuilder {
	b.member = member

	return b
}

// Volume writes the dataset on a specific volume serial.
func (b DatasetWriteBuilder) Volume(volume string) DatasetWriteBuilder {
	b.volume = volume

	return b
}

// DataType selects text, binary, or record mode.
func (b DatasetWriteBuilder) DataType(dataType DataType) DatasetWriteBuilder {
	b.req = b.req.Header("X-IBM-Data-Type", string(dataType))

	return b
}

// IfMatch makes the write conditional on the current Etag, protecting
// against concurrent modification.
func (b DatasetWriteBuilder) IfMatch(etag string) DatasetWriteBuilder {
	b.req = b.req.Header("If-Match", etag)

	return b
}

// MigratedRecall controls recall behavior if the dataset is migrated.
func (b DatasetWriteBuilder) MigratedRecall(mode MigratedRecall) DatasetWriteBuilder {
	b.req = b.req.Header("X-IBM-Migrated-Recall", string(mode))

	return b
}

// Execute issues the write request.
func (b DatasetWriteBuilder) Execute(ctx context.Context) (*WriteResult, error) {
	req := b.req.RawBody("text/plain", b.data)
	req.method = http.MethodPut
	req.path = DatasetPath(b.volume, b.dataset, b.member)

	return req.Execute(ctx)
}

func parseWriteResult(resp *Response) (*WriteResult, error) {
	return &WriteResult{
		Etag:          resp.Etag(),
		TransactionID: resp.TransactionID(),
	}, nil
}

// DatasetDeleteBuilder configures a dataset delete operation.
type DatasetDeleteBuilder struct {
	exec    Executor
	dataset string
	volume  string
	member  string
}

// NewDatasetDeleteBuilder creates a delete builder for the given dataset.
func NewDatasetDeleteBuilder(exec Executor, dataset string) DatasetDeleteBuilder {
	return DatasetDeleteBuilder{exec: exec, dataset: dataset}
}

// Member deletes one member of a partitioned dataset.
func (b DatasetDeleteBuilder) Member(member string) DatasetDeleteBuilder {
	b.member = member

	return b
}

// Volume deletes the dataset on a specific volume serial.
func (b DatasetDeleteBuilder) Volume(volume string) DatasetDeleteBuilder {
	b.volume = volume

	return b
}

// Execute issues the delete request.
func (b DatasetDeleteBuilder) Execute(ctx context.Context) error {
	req := NewBuilder[struct{}](b.exec, http.MethodDelete, DatasetPath(b.volume, b.dataset, b.member)).
		Parser(ParseNone)

	_, err := req.Execute(ctx)

	return err
}

// DatasetMigrateBuilder configures a dataset migrate request.
type DatasetMigrateBuilder struct {
	req  Builder[struct{}]
	wait bool
}

// NewDatasetMigrateBuilder creates a migrate builder for the given dataset.
func NewDatasetMigrateBuilder(exec Executor, dataset string) DatasetMigrateBuilder {
	return DatasetMigrateBuilder{
		req: NewBuilder[struct{}](exec, http.MethodPut, DatasetPath("", dataset, "")).Parser(ParseNone),
	}
}

// Wait blocks the request until migration completes.
func (b DatasetMigrateBuilder) Wait() DatasetMigrateBuilder {
	b.wait = true

	return b
}

// Execute issues the migrate request.
func (b DatasetMigrateBuilder) Execute(ctx context.Context) error {
	body := map[string]interface{}{"request": "hmigrate"}
	if b.wait {
		body["wait"] = true
	}

	_, err := b.req.JSONBody(body).Execute(ctx)

	return err
}

// DatasetEnqueue selects the serialization obtained on the source dataset of
// a copy.
type DatasetEnqueue string

const (
	DatasetEnqueueExclusive       DatasetEnqueue = "EXCLU"
	DatasetEnqueueSharedReadWrite DatasetEnqueue = "SHRW"
)

type datasetCopySource struct {
	Name   string `json:"dsn"`
	Member string `json:"member,omitempty"`
	Alias  *bool  `json:"alias,omitempty"`
}

type datasetCopyBody struct {
	Request string            `json:"request"`
	From    datasetCopySource `json:"from-dataset"`
	Enqueue DatasetEnqueue    `json:"enq,omitempty"`
	Replace *bool             `json:"replace,omitempty"`
}

// DatasetCopyBuilder configures a dataset-to-dataset copy. The request is
// addressed to the target; the source rides in the body.
type DatasetCopyBuilder struct {
	exec     Executor
	to       string
	toMember string
	volume   string
	body     datasetCopyBody
}

// NewDatasetCopyBuilder creates a copy builder from one dataset to another.
func NewDatasetCopyBuilder(exec Executor, from, to string) DatasetCopyBuilder {
	return DatasetCopyBuilder{
		exec: exec,
		to:   to,
		body: datasetCopyBody{Request: "copy", From: datasetCopySource{Name: from}},
	}
}

// FromMember copies one member of the source dataset.
func (b DatasetCopyBuilder) FromMember(member string) DatasetCopyBuilder {
	b.body.From.Member = member

	return b
}

// Alias copies the source's alias entries as well.
func (b DatasetCopyBuilder) Alias() DatasetCopyBuilder {
	alias := true
	b.body.From.Alias = &alias

	return b
}

// ToMember copies into one member of the target dataset.
func (b DatasetCopyBuilder) ToMember(member string) DatasetCopyBuilder {
	b.toMember = member

	return b
}

// Volume addresses the target dataset on a specific volume serial.
func (b DatasetCopyBuilder) Volume(volume string) DatasetCopyBuilder {
	b.volume = volume

	return b
}

// Enqueue selects the serialization obtained on the source.
func (b DatasetCopyBuilder) Enqueue(enq DatasetEnqueue) DatasetCopyBuilder {
	b.body.Enqueue = enq

	return b
}

// Replace overwrites an existing target member.
func (b DatasetCopyBuilder) Replace() DatasetCopyBuilder {
	replace := true
	b.body.Replace = &replace

	return b
}

// Execute issues the copy request.
func (b DatasetCopyBuilder) Execute(ctx context.Context) error {
	req := NewBuilder[struct{}](b.exec, http.MethodPut, DatasetPath(b.volume, b.to, b.toMember)).
		Parser(ParseNone).
		JSONBody(b.body)

	_, err := req.Execute(ctx)

	return err
}

// DatasetRecallBuilder configures a migrated dataset recall request.
type DatasetRecallBuilder struct {
	req  Builder[struct{}]
	wait bool
}

// NewDatasetRecallBuilder creates a recall builder for the given dataset.
func NewDatasetRecallBuilder(exec Executor, dataset string) DatasetRecallBuilder {
	return DatasetRecallBuilder{
		req: NewBuilder[struct{}](exec, http.MethodPut, DatasetPath("", dataset, "")).Parser(ParseNone),
	}
}

// Wait blocks the request until the recall completes.
func (b DatasetRecallBuilder) Wait() DatasetRecallBuilder {
	b.wait = true

	return b
}

// Execute issues the recall request.
func (b DatasetRecallBuilder) Execute(ctx context.Context) error {
	body := map[string]interface{}{"request": "hrecall"}
	if b.wait {
		body["wait"] = true
	}

	_, err := b.req.JSONBody(body).Execute(ctx)

	return err
}
