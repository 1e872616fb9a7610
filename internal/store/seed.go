package store

import "github.com/rafaelq/fieldlog/internal/models"

// Built-in dataset written on first start. The admin PIN is the documented
// bootstrap credential.

func seedUsers() []models.User {
	return []models.User{
		{ID: "u1", Name: "Admin Mucambinho", Role: models.RoleAdmin, PIN: "1234"},
		{ID: "u2", Name: "João da Silva", Role: models.RoleOperator, PIN: "0001"},
		{ID: "u3", Name: "Manoel Oliveira", Role: models.RoleOperator, PIN: "0002"},
	}
}

func seedTractors(today string) []models.Tractor {
	return []models.Tractor{
		{ID: "t1", Name: "Trator 01", Model: "John Deere 6115J", CurrentHorimeter: 1250.5, ExpectedConsumption: 12, LastUpdateDate: today},
		{ID: "t2", Name: "Trator 02", Model: "Massey Ferguson 4275", CurrentHorimeter: 840.2, ExpectedConsumption: 8, LastUpdateDate: today},
		{ID: "t3", Name: "Trator 03", Model: "Case IH Farmall 80", CurrentHorimeter: 2100.8, ExpectedConsumption: 7.5, LastUpdateDate: today},
	}
}

func seedServices() []models.ServiceType {
	return []models.ServiceType{
		{ID: "s1", Name: "Aragem"},
		{ID: "s2", Name: "Gradagem"},
		{ID: "s3", Name: "Plantio"},
		{ID: "s4", Name: "Pulverização"},
		{ID: "s5", Name: "Colheita"},
		{ID: "s6", Name: "Transporte"},
	}
}
