package zosmf

import (
	"context"
	"net/http"
	"strings"
)

// UnixFile is one entry of a USS file list.
type UnixFile struct {
	Name       string `json:"name"             yaml:"name"`
	Mode       string `json:"mode"             yaml:"mode"`
	Size       int64  `json:"size"             yaml:"size"`
	UID        int    `json:"uid"              yaml:"uid"`
	User       string `json:"user,omitempty"   yaml:"user,omitempty"`
	GID        int    `json:"gid"              yaml:"gid"`
	Group      string `json:"group,omitempty"  yaml:"group,omitempty"`
	ModifiedAt string `json:"mtime"            yaml:"mtime"`
	Target     string `json:"target,omitempty" yaml:"target,omitempty"`
}

// IsDir reports whether the entry is a directory.
func (f *UnixFile) IsDir() bool {
	return strings.HasPrefix(f.Mode, "d")
}

// UnixFileList is the response of a USS file list operation. Items preserve
// server order.
type UnixFileList struct {
	ListMeta `yaml:",inline"`

	Items         []UnixFile `json:"items" yaml:"items"`
	TransactionID string     `json:"-"     yaml:"-"`
}

// FileContent is the result of a USS file read.
type FileContent struct {
	Data          []byte
	Etag          string
	TransactionID string
}

// String returns the content as text.
func (c *FileContent) String() string {
	return string(c.Data)
}

// FileType filters USS listings by entry type.
type FileType string

const (
	FileTypeFile      FileType = "f"
	FileTypeDirectory FileType = "d"
	FileTypeSymlink   FileType = "l"
)

// FileCreateRequest holds the parameters for creating a USS file or
// directory.
type FileCreateRequest struct {
	// Type is "file" or "directory" (z/OSMF also accepts "dir").
	Type string `json:"type"           yaml:"type"`
	// Mode is the permission string, e.g. "rwxr-xr-x".
	Mode string `json:"mode,omitempty" yaml:"mode,omitempty"`
}

// fsPath joins /zosmf/restfiles/fs with an absolute USS path.
func fsPath(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return "/zosmf/restfiles/fs" + path
}

// FileListBuilder configures a USS file list operation.
type FileListBuilder struct {
	req Builder[UnixFileList]
}

// NewFileListBuilder creates a list builder for the given USS directory.
func NewFileListBuilder(exec Executor, path string) FileListBuilder {
	return FileListBuilder{
		req: NewBuilder[UnixFileList](exec, http.MethodGet, "/zosmf/restfiles/fs").
			Query("path", path).
			Parser(parseUnixFileList),
	}
}

// Name filters entries by a name pattern.
func (b FileListBuilder) Name(pattern string) FileListBuilder {
	b.req = b.req.Query("name", pattern)

	return b
}

// User filters entries by owning user.
func (b FileListBuilder) User(user string) FileListBuilder {
	b.req = b.req.Query("user", user)

	return b
}

// Group filters entries by owning group.
func (b FileListBuilder) Group(group string) FileListBuilder {
	b.req = b.req.Query("group", group)

	return b
}

// ModifiedDays filters entries by days since modification; use a leading
// "+" or "-" for older/newer comparisons, e.g. "+7".
func (b FileListBuilder) ModifiedDays(filter string) FileListBuilder {
	b.req = b.req.Query("mtime", filter)

	return b
}

// Size filters entries by size, e.g. "+1M".
func (b FileListBuilder) Size(filter string) FileListBuilder {
	b.req = b.req.Query("size", filter)

	return b
}

// Permissions filters entries by permission octal, e.g. "755".
func (b FileListBuilder) Permissions(perm string) FileListBuilder {
	b.req = b.req.Query("perm", perm)

	return b
}

// Type filters entries by file type.
func (b FileListBuilder) Type(fileType FileType) FileListBuilder {
	b.req = b.req.Query("type", string(fileType))

	return b
}

// Depth limits directory recursion.
func (b FileListBuilder) Depth(depth int) FileListBuilder {
	b.req = b.req.QueryInt("depth", depth)

	return b
}

// Limit caps the number of returned entries.
func (b FileListBuilder) Limit(limit int) FileListBuilder {
	b.req = b.req.QueryInt("limit", limit)

	return b
}

// SameFilesystem restricts the listing to the filesystem of the start path.
func (b FileListBuilder) SameFilesystem() FileListBuilder {
	b.req = b.req.Query("filesys", "same")

	return b
}

// FollowSymlinks reports symlink targets instead of the links themselves.
func (b FileListBuilder) FollowSymlinks() FileListBuilder {
	b.req = b.req.Query("symlinks", "follow")

	return b
}

// Lstat reports attributes of symlinks themselves rather than their targets.
func (b FileListBuilder) Lstat() FileListBuilder {
	b.req = b.req.Query("lstat", "true")

	return b
}

// Execute issues the list request.
func (b FileListBuilder) Execute(ctx context.Context) (*UnixFileList, error) {
	return b.req.Execute(ctx)
}

func parseUnixFileList(resp *Response) (*UnixFileList, error) {
	list, err := ParseJSON[UnixFileList](resp)
	if err != nil {
		return nil, err
	}

	list.TransactionID = resp.TransactionID()

	return list, nil
}

// FileReadBuilder configures a USS file read operation.
type FileReadBuilder struct {
	req Builder[FileContent]
}

// NewFileReadBuilder creates a read builder for the given USS path.
func NewFileReadBuilder(exec Executor, path string) FileReadBuilder {
	return FileReadBuilder{
		req: NewBuilder[FileContent](exec, http.MethodGet, fsPath(path)).
			Parser(parseFileContent),
	}
}

// DataType selects text or binary mode.
func (b FileReadBuilder) DataType(dataType DataType) FileReadBuilder {
	b.req = b.req.Header("X-IBM-Data-Type", string(dataType))

	return b
}

// Encoding tags the transfer with a source encoding, e.g. "IBM-1047".
func (b FileReadBuilder) Encoding(encoding string) FileReadBuilder {
	b.req = b.req.Header("X-IBM-Data-Type", "text;fileEncoding="+encoding)

	return b
}

// IfNoneMatch makes the read conditional on the content having changed since
// the given Etag.
func (b FileReadBuilder) IfNoneMatch(etag string) FileReadBuilder {
	b.req = b.req.Header("If-None-Match", etag)

	return b
}

// Execute issues the read request.
func (b FileReadBuilder) Execute(ctx context.Context) (*FileContent, error) {
	return b.req.Execute(ctx)
}

func parseFileContent(resp *Response) (*FileContent, error) {
	return &FileContent{
		Data:          resp.Body,
		Etag:          resp.Etag(),
		TransactionID: resp.TransactionID(),
	}, nil
}

// FileWriteBuilder configures a USS file write operation.
type FileWriteBuilder struct {
	req  Builder[WriteResult]
	data []byte
}

// NewFileWriteBuilder creates a write builder replacing the file's content
// with data.
func NewFileWriteBuilder(exec Executor, path string, data []byte) FileWriteBuilder {
	return FileWriteBuilder{
		req: NewBuilder[WriteResult](exec, http.MethodPut, fsPath(path)).
			Parser(parseWriteResult),
		data: data,
	}
}

// DataType selects text or binary mode.
func (b FileWriteBuilder) DataType(dataType DataType) FileWriteBuilder {
	b.req = b.req.Header("X-IBM-Data-Type", string(dataType))

	return b
}

// IfMatch makes the write conditional on the current Etag.
func (b FileWriteBuilder) IfMatch(etag string) FileWriteBuilder {
	b.req = b.req.Header("If-Match", etag)

	return b
}

// Execute issues the write request.
func (b FileWriteBuilder) Execute(ctx context.Context) (*WriteResult, error) {
	return b.req.RawBody("text/plain", b.data).Execute(ctx)
}

// FileDeleteBuilder configures a USS file delete operation.
type FileDeleteBuilder struct {
	req Builder[struct{}]
}

// NewFileDeleteBuilder creates a delete builder for the given USS path.
func NewFileDeleteBuilder(exec Executor, path string) FileDeleteBuilder {
	return FileDeleteBuilder{
		req: NewBuilder[struct{}](exec, http.MethodDelete, fsPath(path)).Parser(ParseNone),
	}
}

// Recursive removes a directory and its contents.
func (b FileDeleteBuilder) Recursive() FileDeleteBuilder {
	b.req = b.req.Header("X-IBM-Option", "recursive")

	return b
}

// Execute issues the delete request.
func (b FileDeleteBuilder) Execute(ctx context.Context) error {
	_, err := b.req.Execute(ctx)

	return err
}

// FileLinks controls whether an operation applies to symlinks themselves or
// to their targets.
type FileLinks string

const (
	FileLinksFollow   FileLinks = "follow"
	FileLinksSuppress FileLinks = "suppress"
)

type fileChangeModeBody struct {
	Request   string    `json:"request"`
	Mode      string    `json:"mode"`
	Links     FileLinks `json:"links,omitempty"`
	Recursive bool      `json:"recursive"`
}

// FileChangeModeBuilder configures a chmod operation on a USS path.
type FileChangeModeBuilder struct {
	req  Builder[struct{}]
	body fileChangeModeBody
}

// NewFileChangeModeBuilder creates a chmod builder setting the given mode,
// e.g. "755" or "rwxr-xr-x".
func NewFileChangeModeBuilder(exec Executor, path, mode string) FileChangeModeBuilder {
	return FileChangeModeBuilder{
		req:  NewBuilder[struct{}](exec, http.MethodPut, fsPath(path)).Parser(ParseNone),
		body: fileChangeModeBody{Request: "chmod", Mode: mode},
	}
}

// Links controls symlink handling.
func (b FileChangeModeBuilder) Links(links FileLinks) FileChangeModeBuilder {
	b.body.Links = links

	return b
}

// Recursive applies the mode to a directory and its contents.
func (b FileChangeModeBuilder) Recursive() FileChangeModeBuilder {
	b.body.Recursive = true

	return b
}

// Execute issues the chmod request.
func (b FileChangeModeBuilder) Execute(ctx context.Context) error {
	_, err := b.req.JSONBody(b.body).Execute(ctx)

	return err
}

type fileChangeOwnerBody struct {
	Request   string    `json:"request"`
	Owner     string    `json:"owner"`
	Group     string    `json:"group,omitempty"`
	Links     FileLinks `json:"links,omitempty"`
	Recursive bool      `json:"recursive"`
}

// FileChangeOwnerBuilder configures a chown operation on a USS path.
type FileChangeOwnerBuilder struct {
	req  Builder[struct{}]
	body fileChangeOwnerBody
}

// NewFileChangeOwnerBuilder creates a chown builder assigning the given
// owning user.
func NewFileChangeOwnerBuilder(exec Executor, path, owner string) FileChangeOwnerBuilder {
	return FileChangeOwnerBuilder{
		req:  NewBuilder[struct{}](exec, http.MethodPut, fsPath(path)).Parser(ParseNone),
		body: fileChangeOwnerBody{Request: "chown", Owner: owner},
	}
}

// Group assigns the owning group as well.
func (b FileChangeOwnerBuilder) Group(group string) FileChangeOwnerBuilder {
	b.body.Group = group

	return b
}

// Links controls symlink handling.
func (b FileChangeOwnerBuilder) Links(links FileLinks) FileChangeOwnerBuilder {
	b.body.Links = links

	return b
}

// Recursive applies the ownership to a directory and its contents.
func (b FileChangeOwnerBuilder) Recursive() FileChangeOwnerBuilder {
	b.body.Recursive = true

	return b
}

// Execute issues the chown request.
func (b FileChangeOwnerBuilder) Execute(ctx context.Context) error {
	_, err := b.req.JSONBody(b.body).Execute(ctx)

	return err
}

// FileTagType classifies a file's content for automatic conversion.
type FileTagType string

const (
	FileTagTypeText   FileTagType = "text"
	FileTagTypeBinary FileTagType = "binary"
	FileTagTypeMixed  FileTagType = "mixed"
)

type fileTagBody struct {
	Request   string      `json:"request"`
	Action    string      `json:"action"`
	Type      FileTagType `json:"type,omitempty"`
	CodeSet   string      `json:"codeset,omitempty"`
	Links     FileLinks   `json:"links,omitempty"`
	Recursive bool        `json:"recursive"`
}

// FileSetTagBuilder configures a chtag set operation on a USS path.
type FileSetTagBuilder struct {
	req  Builder[struct{}]
	body fileTagBody
}

// NewFileSetTagBuilder creates a builder tagging the given path.
func NewFileSetTagBuilder(exec Executor, path string) FileSetTagBuilder {
	return FileSetTagBuilder{
		req:  NewBuilder[struct{}](exec, http.MethodPut, fsPath(path)).Parser(ParseNone),
		body: fileTagBody{Request: "chtag", Action: "set"},
	}
}

// Type sets the tag classification.
func (b FileSetTagBuilder) Type(tagType FileTagType) FileSetTagBuilder {
	b.body.Type = tagType

	return b
}

// CodeSet sets the tag's code set, e.g. "IBM-1047".
func (b FileSetTagBuilder) CodeSet(codeSet string) FileSetTagBuilder {
	b.body.CodeSet = codeSet

	return b
}

// Links controls symlink handling.
func (b FileSetTagBuilder) Links(links FileLinks) FileSetTagBuilder {
	b.body.Links = links

	return b
}

// Recursive tags a directory and its contents.
func (b FileSetTagBuilder) Recursive() FileSetTagBuilder {
	b.body.Recursive = true

	return b
}

// Execute issues the chtag request.
func (b FileSetTagBuilder) Execute(ctx context.Context) error {
	_, err := b.req.JSONBody(b.body).Execute(ctx)

	return err
}

// FileRemoveTagBuilder configures a chtag remove operation on a USS path.
type FileRemoveTagBuilder struct {
	req  Builder[struct{}]
	body fileTagBody
}

// NewFileRemoveTagBuilder creates a builder untagging the given path.
func NewFileRemoveTagBuilder(exec Executor, path string) FileRemoveTagBuilder {
	return FileRemoveTagBuilder{
		req:  NewBuilder[struct{}](exec, http.MethodPut, fsPath(path)).Parser(ParseNone),
		body: fileTagBody{Request: "chtag", Action: "remove"},
	}
}

// Links controls symlink handling.
func (b FileRemoveTagBuilder) Links(links FileLinks) FileRemoveTagBuilder {
	b.body.Links = links

	return b
}

// Recursive untags a directory and its contents.
func (b FileRemoveTagBuilder) Recursive() FileRemoveTagBuilder {
	b.body.Recursive = true

	return b
}

// Execute issues the chtag request.
func (b FileRemoveTagBuilder) Execute(ctx context.Context) error {
	_, err := b.req.JSONBody(b.body).Execute(ctx)

	return err
}

// FileTagReport is the result of a chtag list operation. Lines carry the raw
// chtag output, one entry per path.
type FileTagReport struct {
	Lines         []string `json:"stdout" yaml:"stdout"`
	TransactionID string   `json:"-"      yaml:"-"`
}

// FileListTagsBuilder configures a chtag list operation on a USS path.
type FileListTagsBuilder struct {
	req  Builder[FileTagReport]
	body fileTagBody
}

// NewFileListTagsBuilder creates a builder reporting the tags of the given
// path.
func NewFileListTagsBuilder(exec Executor, path string) FileListTagsBuilder {
	return FileListTagsBuilder{
		req:  NewBuilder[FileTagReport](exec, http.MethodPut, fsPath(path)).Parser(parseFileTagReport),
		body: fileTagBody{Request: "chtag", Action: "list"},
	}
}

// Recursive reports a directory and its contents.
func (b FileListTagsBuilder) Recursive() FileListTagsBuilder {
	b.body.Recursive = true

	return b
}

// Execute issues the chtag request.
func (b FileListTagsBuilder) Execute(ctx context.Context) (*FileTagReport, error) {
	return b.req.JSONBody(b.body).Execute(ctx)
}

func parseFileTagReport(resp *Response) (*FileTagReport, error) {
	report, err := ParseJSON[FileTagReport](resp)
	if err != nil {
		return nil, err
	}

	report.TransactionID = resp.TransactionID()

	return report, nil
}

type fileCopyBody struct {
	Request   string    `json:"request"`
	From      string    `json:"from"`
	Overwrite bool      `json:"overwrite"`
	Recursive bool      `json:"recursive"`
	Links     FileLinks `json:"links,omitempty"`
}

// FileCopyBuilder configures a file-to-file copy. The request is addressed
// to the target path; the source rides in the body.
type FileCopyBuilder struct {
	req  Builder[struct{}]
	body fileCopyBody
}

// NewFileCopyBuilder creates a copy builder from one USS path to another.
func NewFileCopyBuilder(exec Executor, from, to string) FileCopyBuilder {
	return FileCopyBuilder{
		req:  NewBuilder[struct{}](exec, http.MethodPut, fsPath(to)).Parser(ParseNone),
		body: fileCopyBody{Request: "copy", From: from},
	}
}

// Overwrite replaces an existing target.
func (b FileCopyBuilder) Overwrite() FileCopyBuilder {
	b.body.Overwrite = true

	return b
}

// Recursive copies a directory and its contents.
func (b FileCopyBuilder) Recursive() FileCopyBuilder {
	b.body.Recursive = true

	return b
}

// Links controls symlink handling.
func (b FileCopyBuilder) Links(links FileLinks) FileCopyBuilder {
	b.body.Links = links

	return b
}

// Execute issues the copy request.
func (b FileCopyBuilder) Execute(ctx context.Context) error {
	_, err := b.req.JSONBody(b.body).Execute(ctx)

	return err
}

type fileRenameBody struct {
	Request   string `json:"request"`
	From      string `json:"from"`
	Overwrite bool   `json:"overwrite"`
}

// FileRenameBuilder configures a move of a USS file or directory. The
// request is addressed to the new path; the old path rides in the body.
type FileRenameBuilder struct {
	req  Builder[struct{}]
	body fileRenameBody
}

// NewFileRenameBuilder creates a rename builder moving from to to.
func NewFileRenameBuilder(exec Executor, from, to string) FileRenameBuilder {
	return FileRenameBuilder{
		req:  NewBuilder[struct{}](exec, http.MethodPut, fsPath(to)).Parser(ParseNone),
		body: fileRenameBody{Request: "move", From: from},
	}
}

// Overwrite replaces an existing target.
func (b FileRenameBuilder) Overwrite() FileRenameBuilder {
	b.body.Overwrite = true

	return b
}

// Execute issues the rename request.
func (b FileRenameBuilder) Execute(ctx context.Context) error {
	_, err := b.req.JSONBody(b.body).Execute(ctx)

	return err
}

// FileLinkType selects the kind of link created by a link operation.
type FileLinkType string

const (
	FileLinkTypeSymbolic FileLinkType = "symbol"
	FileLinkTypeHard     FileLinkType = "external"
)

type fileLinkBody struct {
	Request   string       `json:"request"`
	From      string       `json:"from"`
	Type      FileLinkType `json:"type"`
	Recursive bool         `json:"recursive"`
	Force     bool         `json:"force"`
}

// FileLinkBuilder configures a link operation. The request is addressed to
// the link being created; the source rides in the body.
type FileLinkBuilder struct {
	req  Builder[struct{}]
	body fileLinkBody
}

// NewFileLinkBuilder creates a link builder making target a symbolic link to
// source.
func NewFileLinkBuilder(exec Executor, source, target string) FileLinkBuilder {
	return FileLinkBuilder{
		req:  NewBuilder[struct{}](exec, http.MethodPut, fsPath(target)).Parser(ParseNone),
		body: fileLinkBody{Request: "link", From: source, Type: FileLinkTypeSymbolic},
	}
}

// Type selects a symbolic or hard link.
func (b FileLinkBuilder) Type(linkType FileLinkType) FileLinkBuilder {
	b.body.Type = linkType

	return b
}

// Recursive links a directory and its contents.
func (b FileLinkBuilder) Recursive() FileLinkBuilder {
	b.body.Recursive = true

	return b
}

// Force replaces an existing link.
func (b FileLinkBuilder) Force() FileLinkBuilder {
	b.body.Force = true

	return b
}

// Execute issues the link request.
func (b FileLinkBuilder) Execute(ctx context.Context) error {
	_, err := b.req.JSONBody(b.body).Execute(ctx)

	return err
}
