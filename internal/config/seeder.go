package config

import (
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"folhacred/internal/adapters/persistence/models"
	"folhacred/internal/pkg/password"
)

// SeedDemoData inserts a demo company and employee when the database is
// empty. Dev convenience only; safe to run repeatedly.
func SeedDemoData(db *gorm.DB, log *logrus.Logger) error {
	var count int64
	if err := db.Model(&models.Empresa{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	senha, err := password.Hash("123456")
	if err != nil {
		return err
	}

	empresa := &models.Empresa{
		Cnpj:              "12345678000199",
		RazaoSocial:       "Empresa Teste LTDA",
		NomeRepresentante: "Joao Silva",
		CpfRepresentante:  "12345678901",
		Email:             "empresa@teste.com",
		Senha:             senha,
	}
	if err := db.Create(empresa).Error; err != nil {
		return err
	}

	funcionario := &models.Funcionario{
		Nome:      "Maria Santos",
		Cpf:       "98765432100",
		Email:     "funcionario@teste.com",
		Senha:     senha,
		Salario:   5000,
		EmpresaID: &empresa.ID,
	}
	if err := db.Create(funcionario).Error; err != nil {
		return err
	}

	log.Infof("demo data seeded: empresa=%s funcionario=%s", empresa.Email, funcionario.Email)
	return nil
}
