// Package domain define contratos e tipos de domínio da cafeteira.
//
// Este pacote não depende de net/http nem de implementações concretas.
// A intenção é permitir testes de unidade puros e desacoplar as regras de
// preparo (override de calendário, load shedding, composição com o clima)
// dos detalhes de infraestrutura.
package domain
