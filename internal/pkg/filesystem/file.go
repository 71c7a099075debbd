package filesystem

// FileDef describes a file to be read: the path and a description for error messages.
type FileDef struct {
	desc string
	path string
}

func NewFileDef(path string) *FileDef {
	return &FileDef{path: path}
}

func (f *FileDef) Path() string {
	return f.path
}

func (f *FileDef) SetPath(v string) *FileDef {
	f.path = v
	return f
}

func (f *FileDef) Description() string {
	return f.desc
}

func (f *FileDef) SetDescription(v string) *FileDef {
	f.desc = v
	return f
}

// RawFile is a file with a string content.
type RawFile struct {
	*FileDef
	Content string
}

func NewRawFile(path, content string) *RawFile {
	file := &RawFile{FileDef: NewFileDef(path)}
	file.Content = content
	return file
}

func (f *RawFile) SetDescription(desc string) *RawFile {
	f.desc = desc
	return f
}
