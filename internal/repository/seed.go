package repository

import "github.com/atinyakov/taletrail/internal/models"

// Seed fills the catalog with a small fixed set of authors, publishers and
// books.
func (s *Store) Seed() {
	for _, a := range []models.Author{
		{ID: "frank-herbert", Name: "Frank Herbert", BirthDate: "1920-10-08", DeathDate: "1986-02-11", Bio: "American science fiction author best known for Dune."},
		{ID: "jrr-tolkien", Name: "J.R.R. Tolkien", BirthDate: "1892-01-03", DeathDate: "1973-09-02", Bio: "English writer and philologist, author of The Hobbit."},
		{ID: "ursula-le-guin", Name: "Ursula K. Le Guin", BirthDate: "1929-10-21", DeathDate: "2018-01-22", Bio: "American author of speculative fiction."},
		{ID: "terry-pratchett", Name: "Terry Pratchett", BirthDate: "1948-04-28", DeathDate: "2015-03-12", Bio: "English humorist and author of the Discworld novels."},
		{ID: "neil-gaiman", Name: "Neil Gaiman", BirthDate: "1960-11-10", Bio: "English author of novels, comics and screenplays."},
	} {
		s.AddAuthor(a)
	}

	for _, p := range []models.Publisher{
		{ID: "chilton", Name: "Chilton Books", Address: "Philadelphia, PA", FoundedYear: 1904},
		{ID: "allen-unwin", Name: "George Allen & Unwin", Address: "London, UK", FoundedYear: 1914},
		{ID: "parnassus", Name: "Parnassus Press", Address: "Berkeley, CA", FoundedYear: 1957},
		{ID: "gollancz", Name: "Gollancz", Address: "London, UK", FoundedYear: 1927},
	} {
		s.AddPublisher(p)
	}

	s.AddBook(models.Book{ID: "dune", Title: "Dune", Language: "en", PublicationYear: 1965, PublisherID: "chilton",
		Description: "A desert planet, a noble family and the spice that controls the universe."}, "frank-herbert")
	s.AddBook(models.Book{ID: "the-hobbit", Title: "The Hobbit", Language: "en", PublicationYear: 1937, PublisherID: "allen-unwin",
		Description: "Bilbo Baggins is swept into a quest for a dragon's treasure."}, "jrr-tolkien")
	s.AddBook(models.Book{ID: "fellowship", Title: "The Fellowship of the Ring", Language: "en", PublicationYear: 1954, PublisherID: "allen-unwin",
		Description: "The first part of The Lord of the Rings."}, "jrr-tolkien")
	s.AddBook(models.Book{ID: "earthsea", Title: "A Wizard of Earthsea", Language: "en", PublicationYear: 1968, PublisherID: "parnassus",
		Description: "A young mage unleashes a shadow and must hunt it down."}, "ursula-le-guin")
	s.AddBook(models.Book{ID: "good-omens", Title: "Good Omens", Language: "en", PublicationYear: 1990, PublisherID: "gollancz",
		Description: "An angel and a demon try to prevent the apocalypse."}, "terry-pratchett", "neil-gaiman")
}
