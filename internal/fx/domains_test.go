package fx

import "testing"

func TestDomainConstructorsRejectOutOfRange(t *testing.T) {
	if _, err := NewFLP([]Point{{1.0, 50}}); err == nil {
		t.Fatal("expected error: 50 is below FLP's [100,1300] domain")
	}
	if _, err := NewFHF([]Point{{1.0, 2}}); err == nil {
		t.Fatal("expected error: 2 is outside FHF's [0,1] domain")
	}
}

func TestDomainConstructorsAcceptInRange(t *testing.T) {
	if _, err := NewFTP([]Point{{1.0, 0.05}}); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFTTL([]Point{{1.0, 64}}); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFFlow([]Point{{1.0, 5}}); err != nil {
		t.Fatal(err)
	}
}
