package handlers

// Response messages are user-facing and kept in Portuguese.
const (
	MsgInvalidBody = "Corpo da requisição inválido"

	MsgTasksFetchFailed = "Erro ao buscar tarefas"
	MsgTaskTitleMissing = "Título é obrigatório"
	MsgTaskCreateFailed = "Erro ao criar tarefa"
	MsgTaskNotFound     = "Tarefa não encontrada"
	MsgTaskFetchFailed  = "Erro ao buscar tarefa"
	MsgTaskUpdateFailed = "Erro ao atualizar tarefa"
	MsgTaskDeleted      = "Tarefa excluída com sucesso"
	MsgTaskDeleteFailed = "Erro ao excluir tarefa"

	MsgUsersFetchFailed  = "Erro ao buscar usuários"
	MsgUserFieldsMissing = "Nome e email são obrigatórios"
	MsgUserCreateFailed  = "Erro ao criar usuário"
	MsgUserNotFound      = "Usuário não encontrado"
	MsgUserFetchFailed   = "Erro ao buscar usuário"
	MsgUserUpdateFailed  = "Erro ao atualizar usuário"
	MsgUserDeleted       = "Usuário excluído com sucesso"
	MsgUserDeleteFailed  = "Erro ao excluir usuário"

	MsgStatsFetchFailed = "Erro ao buscar estatísticas"

	MsgDashboardFailed = "Erro ao carregar o painel"

	MsgInternalError = "internal server error"
)
