package sefaz

import (
	"fmt"

	"github.com/jhoicas/nfe-emissor/pkg/nfe"
)

// Serviços SEFAZ utilizados pelo emissor.
const (
	ServiceAuthorization       = "NFeAutorizacao"
	ServiceReturnAuthorization = "NFeRetAutorizacao"
)

// Autorizadores.
const (
	ProviderSVRS = "SVRS"
)

// Endpoint destino resolvido para (UF, ambiente, serviço).
type Endpoint struct {
	URL           string
	Provider      string // sigla da UF autorizadora ou "SVRS"
	Service       string
	SOAPNamespace string // namespace do elemento nfeDadosMsg
	ResultWrapper string // elemento do Body que envolve o retorno (nfeResultMsg)
}

// soapNamespaceBase + "<Serviço>4" é o namespace WSDL de cada operação.
const soapNamespaceBase = "http://www.portalfiscal.inf.br/nfe/wsdl/"

// wrapper de resultado comum aos autorizadores 4.00.
const resultWrapper = "nfeResultMsg"

type serviceURLs map[string]string

var svrsURLs = map[string]serviceURLs{
	nfe.EnvironmentHomologation: {
		ServiceAuthorization:       "https://nfe-homologacao.svrs.rs.gov.br/ws/NfeAutorizacao/NFeAutorizacao4.asmx",
		ServiceReturnAuthorization: "https://nfe-homologacao.svrs.rs.gov.br/ws/NfeRetAutorizacao/NFeRetAutorizacao4.asmx",
	},
	nfe.EnvironmentProduction: {
		ServiceAuthorization:       "https://nfe.svrs.rs.gov.br/ws/NfeAutorizacao/NFeAutorizacao4.asmx",
		ServiceReturnAuthorization: "https://nfe.svrs.rs.gov.br/ws/NfeRetAutorizacao/NFeRetAutorizacao4.asmx",
	},
}

// Autorizadores próprios. Serviços ausentes caem no SVRS.
var stateURLs = map[string]map[string]serviceURLs{
	"AM": {
		nfe.EnvironmentHomologation: {
			ServiceAuthorization:       "https://homnfe.sefaz.am.gov.br/services2/services/NfeAutorizacao4",
			ServiceReturnAuthorization: "https://homnfe.sefaz.am.gov.br/services2/services/NfeRetAutorizacao4",
		},
		nfe.EnvironmentProduction: {
			ServiceAuthorization:       "https://nfe.sefaz.am.gov.br/services2/services/NfeAutorizacao4",
			ServiceReturnAuthorization: "https://nfe.sefaz.am.gov.br/services2/services/NfeRetAutorizacao4",
		},
	},
	"BA": {
		nfe.EnvironmentHomologation: {
			ServiceAuthorization:       "https://hnfe.sefaz.ba.gov.br/webservices/NFeAutorizacao4/NFeAutorizacao4.asmx",
			ServiceReturnAuthorization: "https://hnfe.sefaz.ba.gov.br/webservices/NFeRetAutorizacao4/NFeRetAutorizacao4.asmx",
		},
		nfe.EnvironmentProduction: {
			ServiceAuthorization:       "https://nfe.sefaz.ba.gov.br/webservices/NFeAutorizacao4/NFeAutorizacao4.asmx",
			ServiceReturnAuthorization: "https://nfe.sefaz.ba.gov.br/webservices/NFeRetAutorizacao4/NFeRetAutorizacao4.asmx",
		},
	},
	"GO": {
		nfe.EnvironmentHomologation: {
			ServiceAuthorization:       "https://homolog.sefaz.go.gov.br/nfe/services/NFeAutorizacao4?wsdl",
			ServiceReturnAuthorization: "https://homolog.sefaz.go.gov.br/nfe/services/NFeRetAutorizacao4?wsdl",
		},
		nfe.EnvironmentProduction: {
			ServiceAuthorization:       "https://nfe.sefaz.go.gov.br/nfe/services/NFeAutorizacao4?wsdl",
			ServiceReturnAuthorization: "https://nfe.sefaz.go.gov.br/nfe/services/NFeRetAutorizacao4?wsdl",
		},
	},
	"MG": {
		nfe.EnvironmentHomologation: {
			ServiceAuthorization:       "https://hnfe.fazenda.mg.gov.br/nfe2/services/NFeAutorizacao4",
			ServiceReturnAuthorization: "https://hnfe.fazenda.mg.gov.br/nfe2/services/NFeRetAutorizacao4",
		},
		nfe.EnvironmentProduction: {
			ServiceAuthorization:       "https://nfe.fazenda.mg.gov.br/nfe2/services/NFeAutorizacao4",
			ServiceReturnAuthorization: "https://nfe.fazenda.mg.gov.br/nfe2/services/NFeRetAutorizacao4",
		},
	},
	"MS": {
		nfe.EnvironmentHomologation: {
			ServiceAuthorization:       "https://hom.nfe.sefaz.ms.gov.br/ws/NFeAutorizacao4",
			ServiceReturnAuthorization: "https://hom.nfe.sefaz.ms.gov.br/ws/NFeRetAutorizacao4",
		},
		nfe.EnvironmentProduction: {
			ServiceAuthorization:       "https://nfe.sefaz.ms.gov.br/ws/NFeAutorizacao4",
			ServiceReturnAuthorization: "https://nfe.sefaz.ms.gov.br/ws/NFeRetAutorizacao4",
		},
	},
	"MT": {
		nfe.EnvironmentHomologation: {
			ServiceAuthorization:       "https://homologacao.sefaz.mt.gov.br/nfews/v2/services/NfeAutorizacao4?wsdl",
			ServiceReturnAuthorization: "https://homologacao.sefaz.mt.gov.br/nfews/v2/services/NfeRetAutorizacao4?wsdl",
		},
		nfe.EnvironmentProduction: {
			ServiceAuthorization:       "https://nfe.sefaz.mt.gov.br/nfews/v2/services/NfeAutorizacao4?wsdl",
			ServiceReturnAuthorization: "https://nfe.sefaz.mt.gov.br/nfews/v2/services/NfeRetAutorizacao4?wsdl",
		},
	},
	"PE": {
		nfe.EnvironmentHomologation: {
			ServiceAuthorization:       "https://nfehomolog.sefaz.pe.gov.br/nfe-service/services/NFeAutorizacao4",
			ServiceReturnAuthorization: "https://nfehomolog.sefaz.pe.gov.br/nfe-service/services/NFeRetAutorizacao4",
		},
		nfe.EnvironmentProduction: {
			ServiceAuthorization:       "https://nfe.sefaz.pe.gov.br/nfe-service/services/NFeAutorizacao4",
			ServiceReturnAuthorization: "https://nfe.sefaz.pe.gov.br/nfe-service/services/NFeRetAutorizacao4",
		},
	},
	"PR": {
		nfe.EnvironmentHomologation: {
			ServiceAuthorization:       "https://homologacao.nfe.sefa.pr.gov.br/nfe/NFeAutorizacao4?wsdl",
			ServiceReturnAuthorization: "https://homologacao.nfe.sefa.pr.gov.br/nfe/NFeRetAutorizacao4?wsdl",
		},
		nfe.EnvironmentProduction: {
			ServiceAuthorization:       "https://nfe.sefa.pr.gov.br/nfe/NFeAutorizacao4?wsdl",
			ServiceReturnAuthorization: "https://nfe.sefa.pr.gov.br/nfe/NFeRetAutorizacao4?wsdl",
		},
	},
	"RS": {
		nfe.EnvironmentHomologation: {
			ServiceAuthorization:       "https://nfe-homologacao.sefazrs.rs.gov.br/ws/NfeAutorizacao/NFeAutorizacao4.asmx",
			ServiceReturnAuthorization: "https://nfe-homologacao.sefazrs.rs.gov.br/ws/NfeRetAutorizacao/NFeRetAutorizacao4.asmx",
		},
		nfe.EnvironmentProduction: {
			ServiceAuthorization:       "https://nfe.sefazrs.rs.gov.br/ws/NfeAutorizacao/NFeAutorizacao4.asmx",
			ServiceReturnAuthorization: "https://nfe.sefazrs.rs.gov.br/ws/NfeRetAutorizacao/NFeRetAutorizacao4.asmx",
		},
	},
	"SP": {
		nfe.EnvironmentHomologation: {
			ServiceAuthorization:       "https://homologacao.nfe.fazenda.sp.gov.br/ws/nfeautorizacao4.asmx",
			ServiceReturnAuthorization: "https://homologacao.nfe.fazenda.sp.gov.br/ws/nferetautorizacao4.asmx",
		},
		nfe.EnvironmentProduction: {
			ServiceAuthorization:       "https://nfe.fazenda.sp.gov.br/ws/nfeautorizacao4.asmx",
			ServiceReturnAuthorization: "https://nfe.fazenda.sp.gov.br/ws/nferetautorizacao4.asmx",
		},
	},
}

// ResolveEndpoint devolve o endereço do serviço para a UF e o ambiente.
// UF com autorizador próprio usa a tabela da UF; as demais (AC, AL, AP, CE, DF, ES,
// MA, PA, PB, PI, RJ, RN, RO, RR, SC, SE, TO) e qualquer UF desconhecida caem no SVRS.
func ResolveEndpoint(uf, environment, service string) (Endpoint, error) {
	svrs, ok := svrsURLs[environment]
	if !ok {
		return Endpoint{}, fmt.Errorf("sefaz: ambiente desconhecido %q (use 1 ou 2)", environment)
	}
	if _, ok := svrs[service]; !ok {
		return Endpoint{}, fmt.Errorf("sefaz: serviço desconhecido %q", service)
	}

	ep := Endpoint{
		Service:       service,
		SOAPNamespace: soapNamespaceBase + service + "4",
		ResultWrapper: resultWrapper,
	}
	if byEnv, ok := stateURLs[uf]; ok {
		if url, ok := byEnv[environment][service]; ok {
			ep.URL = url
			ep.Provider = uf
			return ep, nil
		}
	}
	ep.URL = svrs[service]
	ep.Provider = ProviderSVRS
	return ep, nil
}
