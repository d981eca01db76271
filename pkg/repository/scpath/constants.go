package scpath

const (
	// SourceDir is the name of the repository metadata directory
	SourceDir = ".gitlet"

	// ObjectsDir holds the blob and commit stores
	ObjectsDir = "objects"

	// BlobsDir is the blob store below ObjectsDir
	BlobsDir = "blobs"

	// CommitsDir is the commit store below ObjectsDir
	CommitsDir = "commits"

	// RefsDir holds one file per branch plus HEAD
	RefsDir = "refs"

	// HeadFile names the current branch
	HeadFile = "HEAD"

	// IndexFile is the staging index
	IndexFile = "index"

	// ConfigFile is the repository configuration
	ConfigFile = "config.yaml"

	// CatalogFile is the commit catalog database
	CatalogFile = "catalog.db"

	// IgnoreFile lives in the working tree root
	IgnoreFile = ".gitletignore"
)
