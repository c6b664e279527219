package bank

import "testing"

func TestPolicyFor_KnownTypes(t *testing.T) {
	tests := []struct {
		name string
		t    AccountType
		want Policy
	}{
		{"student", Student, Policy{WithdrawalLimit: 150, DepositLimit: 250, OverdraftFloor: 0, Commission: 0}},
		{"gold", Gold, Policy{WithdrawalLimit: 2000, DepositLimit: 2000, OverdraftFloor: -1000, Commission: 0.5}},
		{"platinum", Platinum, Policy{WithdrawalLimit: 3000, DepositLimit: 2000, OverdraftFloor: -1500, Commission: 0.7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PolicyFor(tt.t); got != tt.want {
				t.Errorf("PolicyFor(%q) = %+v; want %+v", tt.t, got, tt.want)
			}
		})
	}
}

func TestPolicyFor_UnknownTypeFallsBack(t *testing.T) {
	got := PolicyFor(AccountType("premium"))
	if got != basePolicy {
		t.Errorf("PolicyFor(unknown) = %+v; want base policy %+v", got, basePolicy)
	}
}
