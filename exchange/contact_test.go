package exchange

import "testing"

func TestContactLink(t *testing.T) {
	seller := User{Name: "Bongani N.", Phone: "+27 61-987 6543"}
	link, ok := ContactLink(seller, Book{Title: "Intro to C++ & Java"})
	if !ok {
		t.Fatalf("expected a link")
	}
	want := "https://wa.me/27619876543?text=Hi%20Bongani%20N.,%20I'm%20interested%20in%20Intro%20to%20C%2B%2B%20%26%20Java."
	if link != want {
		t.Fatalf("link = %q\nwant %q", link, want)
	}
}

func TestContactLinkNoPhone(t *testing.T) {
	if _, ok := ContactLink(User{Name: "X", Phone: "n/a"}, Book{}); ok {
		t.Fatalf("expected no link without phone digits")
	}
}
