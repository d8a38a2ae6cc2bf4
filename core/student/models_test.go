package student

import "testing"

func TestMakeID(t *testing.T) {
	// stable across case and padding of the name
	if MakeID(5, "Abena Owusu", 3) != MakeID(5, "  abena owusu ", 3) {
		t.Error("MakeID() should be case and whitespace insensitive")
	}
	// different positions give different IDs even for homonyms
	if MakeID(5, "Abena Owusu", 3) == MakeID(6, "Abena Owusu", 4) {
		t.Error("MakeID() should vary with row position")
	}
}

func TestStudentHelpers(t *testing.T) {
	s := Student{
		Name:            "Abena Owusu",
		Class:           "Basic 4",
		InitialPaid:     100,
		Payment:         250,
		BooksFeePayment: 50,
		Balance:         600,
	}
	if got := s.TotalPaid(); got != 400 {
		t.Errorf("TotalPaid() = %v, want 400", got)
	}
	if !s.IsOwing() {
		t.Error("IsOwing() should be true with positive balance")
	}
	if s.Blank() {
		t.Error("Blank() misreported a named row")
	}

	if !(Student{Balance: 0}).Blank() {
		t.Error("row with no name and class should be blank")
	}
	if (Student{Class: "Basic 1"}).Blank() {
		t.Error("class alone is enough identity")
	}
	if (Student{Balance: -20}).IsOwing() {
		t.Error("credit balance is not owing")
	}
}
