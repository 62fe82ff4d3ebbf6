package types

// Dates are stored as plain ISO strings (2006-01-02); the backing store
// never needs to compute with them.
const DateLayout = "2006-01-02"

type Category struct {
	ID   string `db:"id" json:"id" goqu:"skipupdate"`
	Key  int    `db:"key" json:"key"`
	Name string `db:"name" json:"name"`
}

type Author struct {
	ID          string `db:"id" json:"id" goqu:"skipupdate"`
	Name        string `db:"name" json:"name"`
	Nationality string `db:"nationality" json:"nationality"`
}

type Book struct {
	ID         string `db:"id" json:"id" goqu:"skipupdate"`
	Name       string `db:"name" json:"name"`
	Publisher  string `db:"publisher" json:"publisher"`
	CategoryID string `db:"category_id" json:"categoryId"`
	AuthorID   string `db:"author_id" json:"authorId"`
}

type Loan struct {
	ID         string  `db:"id" json:"id" goqu:"skipupdate"`
	AccountID  string  `db:"account_id" json:"accountId"`
	BookID     string  `db:"book_id" json:"bookId"`
	LoanDate   string  `db:"loan_date" json:"loanDate"`
	ReturnDate *string `db:"return_date" json:"returnDate"`
}

// Person holds the profile data attached 1:1 to an account.
type Person struct {
	ID         string `db:"id" json:"id" goqu:"skipupdate"`
	AccountID  string `db:"account_id" json:"accountId"`
	NationalID int    `db:"national_id" json:"nationalId"`
	BirthDate  string `db:"birth_date" json:"birthDate"`
	Address    string `db:"address" json:"address"`
	City       string `db:"city" json:"city"`
}
