package models

import "testing"

func catalog() []Service {
	return []Service{
		{Id: "s1", BusinessID: "biz-1", Name: "Braiding", BasePrice: 1000, Active: true},
		{Id: "s2", BusinessID: "biz-1", Name: "Trim", BasePrice: 250, Active: false},
		{Id: "s3", BusinessID: "biz-2", Name: "Braiding", BasePrice: 900, Active: true},
	}
}

func TestServicePrice(t *testing.T) {
	services := catalog()

	if p := ServicePrice(services, "s1"); p == nil || *p != 1000 {
		t.Fatalf("ServicePrice(s1) = %v, want 1000", p)
	}
	if p := ServicePrice(services, "s2"); p == nil || *p != 250 {
		t.Fatalf("inactive services still resolve a price, got %v", p)
	}
	if p := ServicePrice(services, "missing"); p != nil {
		t.Fatalf("missing service must yield nil, got %v", *p)
	}
	if p := ServicePrice(nil, "s1"); p != nil {
		t.Fatalf("empty catalog must yield nil, got %v", *p)
	}
}

func TestFilterActive(t *testing.T) {
	services := catalog()

	got := FilterActive(services, "biz-1")
	if len(got) != 1 || got[0].Id != "s1" {
		t.Fatalf("FilterActive(biz-1) = %v, want exactly s1", got)
	}
	for _, s := range got {
		if s.BusinessID != "biz-1" || !s.Active {
			t.Fatalf("extra service in result: %+v", s)
		}
	}

	if got := FilterActive(services, "biz-3"); len(got) != 0 {
		t.Fatalf("unknown business must yield empty set, got %v", got)
	}
	if got := FilterActive(nil, "biz-1"); len(got) != 0 {
		t.Fatalf("empty catalog must yield empty set, got %v", got)
	}
}
