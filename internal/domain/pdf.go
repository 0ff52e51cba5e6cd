package domain

// PDFInfo is document-level information read from a PDF's trailer and page tree.
type PDFInfo struct {
	Title     string
	Author    string
	PageCount int
	Encrypted bool
}
