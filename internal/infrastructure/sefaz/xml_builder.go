package sefaz

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/jhoicas/nfe-emissor/internal/domain/entity"
	"github.com/jhoicas/nfe-emissor/pkg/nfe"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Namespace do leiaute NF-e.
const NsNFe = "http://www.portalfiscal.inf.br/nfe"

// fuso fixo de Brasília usado em dhEmi/dhSaiEnt.
const brasiliaOffset = "-03:00"

// XMLBuilderService monta o XML da NF-e 4.00 (sem assinatura).
type XMLBuilderService struct {
	logger zerolog.Logger
}

// NewXMLBuilderService cria o serviço.
func NewXMLBuilderService(logger zerolog.Logger) *XMLBuilderService {
	return &XMLBuilderService{logger: logger}
}

// Build valida o destinatário, gera cNF e chave de acesso e serializa o documento
// de forma compacta (sem indentação entre tags).
func (s *XMLBuilderService) Build(in *BuildInput) (*BuildResult, error) {
	if in == nil || in.Invoice == nil || in.Emitter == nil {
		return nil, fmt.Errorf("sefaz: faltam nota ou emitente para montar o XML")
	}
	inv, em := in.Invoice, in.Emitter
	env := in.Environment
	if env == "" {
		env = nfe.EnvironmentHomologation
	}
	if !nfe.IsValidEnvironment(env) {
		return nil, fmt.Errorf("sefaz: ambiente inválido %q", env)
	}

	destTaxID := nfe.OnlyDigits(inv.DestTaxID)
	if err := nfe.ValidateRecipientTaxID(inv.DestTaxID); err != nil {
		return nil, err
	}
	destIsCompany := nfe.IsLegalEntity(destTaxID)

	number := inv.Number
	if number == "" {
		number = "000001"
	}
	cnpj := nfe.OnlyDigits(em.CNPJ)
	numericCode := nfe.GenerateNumericCode()
	accessKey, err := nfe.GenerateAccessKey(nfe.AccessKeyParams{
		UF:           em.UF,
		IssueDate:    inv.IssueDate,
		CNPJ:         cnpj,
		Model:        nfe.ModelNFe,
		Series:       inv.Series,
		Number:       number,
		EmissionType: nfe.EmissionNormal,
		NumericCode:  numericCode,
	})
	if err != nil {
		return nil, fmt.Errorf("sefaz: gerar chave de acesso: %w", err)
	}

	dhEmi, err := formatDateTime(inv.IssueDate, inv.IssueTime)
	if err != nil {
		return nil, err
	}
	dhSaiEnt := dhEmi
	if inv.ExitDate != "" && inv.ExitTime != "" {
		if dhSaiEnt, err = formatDateTime(inv.ExitDate, inv.ExitTime); err != nil {
			return nil, err
		}
	}

	emitCity := nfe.OnlyDigits(em.CityCode)
	if emitCity == "" {
		s.logger.Warn().Str("cnpj", cnpj).Msg("código do município do emitente não configurado")
		emitCity = nfe.EmptyCityCode
	}
	crt := em.TaxRegime
	if crt == "" {
		crt = nfe.DefaultCRT
	}
	if crt == entity.TaxRegimeNormal {
		// TODO: grupos ICMS00/ICMS20 para regime normal; hoje todo item sai como ICMSSN102.
		s.logger.Warn().Str("cnpj", cnpj).Msg("CRT=3 (regime normal) emitido com ICMSSN102")
	}
	nNF, err := strconv.Atoi(nfe.OnlyDigits(number))
	if err != nil {
		return nil, fmt.Errorf("sefaz: número da nota inválido %q", inv.Number)
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header[:len(xml.Header)-1])
	w := &xmlWriter{enc: xml.NewEncoder(&buf)}

	w.open("NFe", attr("xmlns", NsNFe))
	w.open("infNFe", attr("versao", nfe.LayoutVersion), attr("Id", "NFe"+accessKey))

	// ---- ide
	w.open("ide")
	w.leaf("cUF", nfe.UFCode(em.UF))
	w.leaf("cNF", numericCode)
	w.leaf("natOp", inv.OperationNature)
	w.leaf("mod", nfe.ModelNFe)
	w.leaf("serie", inv.Series)
	w.leaf("nNF", strconv.Itoa(nNF))
	w.leaf("dhEmi", dhEmi)
	w.leaf("dhSaiEnt", dhSaiEnt)
	w.leaf("tpNF", inv.OperationType)
	w.leaf("idDest", "1")
	w.leaf("cMunFG", emitCity)
	w.leaf("tpImp", "1")
	w.leaf("tpEmis", nfe.EmissionNormal)
	w.leaf("cDV", accessKey[len(accessKey)-1:])
	w.leaf("tpAmb", env)
	w.leaf("finNFe", inv.Purpose)
	w.leaf("indFinal", boolFlag(inv.FinalConsumer))
	w.leaf("indPres", inv.PresenceIndicator)
	w.leaf("procEmi", "0")
	w.leaf("verProc", nfe.ProcessVersion)
	w.close("ide")

	// ---- emit
	w.open("emit")
	w.leaf("CNPJ", cnpj)
	w.leaf("xNome", em.LegalName)
	w.optional("xFant", em.TradeName)
	w.open("enderEmit")
	w.leaf("xLgr", em.Street)
	w.leaf("nro", em.Number)
	w.optional("xCpl", em.Complement)
	w.leaf("xBairro", em.District)
	w.leaf("cMun", emitCity)
	w.leaf("xMun", em.City)
	w.leaf("UF", em.UF)
	w.leaf("CEP", cleanZip(em.ZipCode))
	w.leaf("cPais", nfe.CountryCode)
	w.leaf("xPais", nfe.CountryName)
	w.optional("fone", nfe.OnlyDigits(em.Phone))
	w.close("enderEmit")
	w.leaf("IE", stateRegistration(em.StateRegistration))
	w.leaf("CRT", crt)
	w.close("emit")

	// ---- dest
	destCity := nfe.OnlyDigits(inv.DestCityCode)
	if destCity == "" {
		destCity = emitCity
	}
	destUF := inv.DestUF
	if destUF == "" {
		destUF = em.UF
	}
	destName := inv.DestName
	if env == nfe.EnvironmentHomologation {
		destName = nfe.HomologationRecipientName
	}
	w.open("dest")
	if destIsCompany {
		w.leaf("CNPJ", destTaxID)
	} else {
		w.leaf("CPF", destTaxID)
	}
	w.leaf("xNome", destName)
	w.open("enderDest")
	w.leaf("xLgr", orDefault(inv.DestStreet, "RUA NAO INFORMADA"))
	w.leaf("nro", orDefault(inv.DestNumber, "S/N"))
	w.optional("xCpl", inv.DestComplement)
	w.leaf("xBairro", orDefault(inv.DestDistrict, "NAO INFORMADO"))
	w.leaf("cMun", destCity)
	w.leaf("xMun", inv.DestCity)
	w.leaf("UF", destUF)
	w.leaf("CEP", cleanZip(inv.DestZipCode))
	w.leaf("cPais", nfe.CountryCode)
	w.leaf("xPais", nfe.CountryName)
	w.optional("fone", nfe.OnlyDigits(inv.DestPhone))
	w.close("enderDest")
	w.leaf("indIEDest", "9")
	w.optional("email", inv.DestEmail)
	w.close("dest")

	// ---- det
	for i, it := range in.Items {
		s.writeItem(w, i+1, it, env)
	}

	// ---- total
	zero := dec2(decimal.Zero)
	w.open("total")
	w.open("ICMSTot")
	for _, tag := range []string{"vBC", "vICMS", "vICMSDeson", "vFCPUFDest", "vICMSUFDest", "vICMSUFRemet", "vFCP", "vBCST", "vST", "vFCPST", "vFCPSTRet"} {
		w.leaf(tag, zero)
	}
	w.leaf("vProd", dec2(inv.ProductsTotal))
	w.leaf("vFrete", dec2(inv.Freight))
	w.leaf("vSeg", dec2(inv.Insurance))
	w.leaf("vDesc", dec2(inv.Discount))
	for _, tag := range []string{"vII", "vIPI", "vIPIDevol", "vPIS", "vCOFINS"} {
		w.leaf(tag, zero)
	}
	w.leaf("vOutro", dec2(inv.OtherExpenses))
	w.leaf("vNF", dec2(inv.Total))
	w.close("ICMSTot")
	w.close("total")

	// ---- transp / pag / infAdic
	w.open("transp")
	w.leaf("modFrete", orDefault(inv.FreightMode, nfe.DefaultModFrete))
	w.close("transp")
	w.open("pag")
	w.open("detPag")
	w.leaf("tPag", "01")
	w.leaf("vPag", dec2(inv.Total))
	w.close("detPag")
	w.close("pag")
	if inv.AdditionalInfo != "" {
		w.open("infAdic")
		w.leaf("infCpl", inv.AdditionalInfo)
		w.close("infAdic")
	}

	w.close("infNFe")
	w.close("NFe")
	if err := w.flush(); err != nil {
		return nil, fmt.Errorf("sefaz: serializar XML: %w", err)
	}

	return &BuildResult{XML: buf.Bytes(), AccessKey: accessKey, NumericCode: numericCode}, nil
}

func (s *XMLBuilderService) writeItem(w *xmlWriter, n int, it *entity.InvoiceItem, env string) {
	description := it.Description
	if env == nfe.EnvironmentHomologation {
		description = nfe.HomologationItemText
	}
	ean := orDefault(it.EAN, nfe.NoGTIN)

	w.open("det", attr("nItem", strconv.Itoa(n)))
	w.open("prod")
	w.leaf("cProd", it.Code)
	w.leaf("cEAN", ean)
	w.leaf("xProd", description)
	w.leaf("NCM", nfe.OnlyDigits(it.NCM))
	w.leaf("CFOP", it.CFOP)
	w.leaf("uCom", it.Unit)
	w.leaf("qCom", dec4(it.Quantity))
	w.leaf("vUnCom", dec4(it.UnitPrice))
	w.leaf("vProd", dec2(it.Total))
	w.leaf("cEANTrib", ean)
	w.leaf("uTrib", it.Unit)
	w.leaf("qTrib", dec4(it.Quantity))
	w.leaf("vUnTrib", dec4(it.UnitPrice))
	w.leaf("indTot", "1")
	w.close("prod")

	zero := dec2(decimal.Zero)
	w.open("imposto")
	w.open("ICMS")
	w.open("ICMSSN102")
	w.leaf("orig", orDefault(it.Origin, nfe.DefaultOrigin))
	w.leaf("CSOSN", orDefault(it.CSOSN, nfe.DefaultCSOSN))
	w.close("ICMSSN102")
	w.close("ICMS")
	w.open("PIS")
	w.open("PISOutr")
	w.leaf("CST", orDefault(it.CSTPIS, nfe.DefaultCSTPis))
	w.leaf("vBC", zero)
	w.leaf("pPIS", zero)
	w.leaf("vPIS", zero)
	w.close("PISOutr")
	w.close("PIS")
	w.open("COFINS")
	w.open("COFINSOutr")
	w.leaf("CST", orDefault(it.CSTCOFINS, nfe.DefaultCSTCof))
	w.leaf("vBC", zero)
	w.leaf("pCOFINS", zero)
	w.leaf("vCOFINS", zero)
	w.close("COFINSOutr")
	w.close("COFINS")
	w.close("imposto")
	w.close("det")
}

// xmlWriter encapsula o encoder guardando o primeiro erro.
type xmlWriter struct {
	enc *xml.Encoder
	err error
}

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

func (w *xmlWriter) token(t xml.Token) {
	if w.err == nil {
		w.err = w.enc.EncodeToken(t)
	}
}

func (w *xmlWriter) open(local string, attrs ...xml.Attr) {
	w.token(xml.StartElement{Name: xml.Name{Local: local}, Attr: attrs})
}

func (w *xmlWriter) close(local string) {
	w.token(xml.EndElement{Name: xml.Name{Local: local}})
}

func (w *xmlWriter) leaf(local, value string) {
	w.open(local)
	w.token(xml.CharData(value))
	w.close(local)
}

// optional omite a tag quando o valor é vazio.
func (w *xmlWriter) optional(local, value string) {
	if value != "" {
		w.leaf(local, value)
	}
}

func (w *xmlWriter) flush() error {
	if w.err != nil {
		return w.err
	}
	return w.enc.Flush()
}

func formatDateTime(date, clock string) (string, error) {
	year, month, day, err := nfe.ParseDate(date)
	if err != nil {
		return "", err
	}
	clock = strings.TrimSpace(clock)
	if clock == "" {
		clock = "00:00:00"
	} else if len(clock) == 5 {
		clock += ":00"
	}
	return year + "-" + month + "-" + day + "T" + clock + brasiliaOffset, nil
}

func stateRegistration(ie string) string {
	upper := strings.ToUpper(strings.TrimSpace(ie))
	if upper == "" || upper == nfe.StateRegExempt {
		return nfe.StateRegExempt
	}
	return nfe.OnlyDigits(ie)
}

func cleanZip(cep string) string {
	d := nfe.OnlyDigits(cep)
	if len(d) > 8 {
		return d[:8]
	}
	return strings.Repeat("0", 8-len(d)) + d
}

func boolFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func dec2(d decimal.Decimal) string { return d.StringFixed(2) }
func dec4(d decimal.Decimal) string { return d.StringFixed(4) }
