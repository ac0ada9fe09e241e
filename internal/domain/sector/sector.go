// Package sector contiene la lista cerrada de setores organizacionales.
package sector

// All es la lista fija de setores, en el orden en que se muestran en los formularios.
var All = []string{
	"Acabamento/Pintura",
	"Almoxarifado",
	"Apoio Usinagem e Montagem Mecânica",
	"Centro Tecnológico de Soldagem - CTS",
	"Comercial",
	"Controle de Qualidade",
	"Delp Açu",
	"Diretoria",
	"Excelência Operacional",
	"Facilities",
	"Field Service",
	"Financeiro",
	"Gente & Gestão",
	"Gerencia da Produção",
	"Gerencia de Projetos",
	"Logística",
	"Manutenção e Expansão",
	"Marketing",
	"Montagem Externa Geral",
	"Montagem Mecânica",
	"Pesquisa e Desenvolvimento – P&D",
	"Planejamento PCP",
	"Pré-Montagem",
	"Preparação",
	"Serviço Espec. Eng. Seg. Medicina Trabalho - SESMT",
	"Sistema Garantia Qualidade",
	"Solda Convencional",
	"Suprimentos",
	"Tecnologia da Informação",
	"Usinagem Mecânica Pesada",
}

var index = func() map[string]struct{} {
	m := make(map[string]struct{}, len(All))
	for _, s := range All {
		m[s] = struct{}{}
	}
	return m
}()

// IsValid indica si label pertenece a la lista (comparación exacta).
func IsValid(label string) bool {
	_, ok := index[label]
	return ok
}
