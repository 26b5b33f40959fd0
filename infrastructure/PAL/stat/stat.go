package stat

import "os"

// Stat abstracts os.Stat so marker lookups under sysfs can be faked.
type Stat interface {
	Stat(name string) (os.FileInfo, error)
}

type DefaultStat struct {
}

func NewDefaultStat() Stat {
	return &DefaultStat{}
}

func (d DefaultStat) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

// Exists reports whether name resolves to anything. Any error, including a
// dangling symlink, counts as absent.
func Exists(s Stat, name string) bool {
	_, err := s.Stat(name)
	return err == nil
}

// IsDir reports whether name resolves to a directory.
func IsDir(s Stat, name string) bool {
	info, err := s.Stat(name)
	return err == nil && info.IsDir()
}
