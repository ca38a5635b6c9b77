package peek

// Hasher computes the content hash used as the join key into the reference
// database.
type Hasher interface {
	// Hash returns the uppercase hex SHA-1 of the file's payload after
	// skipping headerSize bytes. ok is false when no hash can be produced:
	// an unreadable file, a corrupt archive, or an archive with no entries.
	Hash(file RomFile, headerSize int) (hash string, ok bool)
}
