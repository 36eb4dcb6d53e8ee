package room

import (
	"sync"

	"go.uber.org/zap"
)

// Conn abstrai a conexão de um cliente pro fan-out (e pros testes)
type Conn interface {
	WriteJSON(v any) error
	Close() error
}

// room agrupa membros, quadro de quests e conexões.
// Todo o estado da sala é uma única seção crítica (mu).
// closed marca uma sala já removida do registro: quem pegou o ponteiro
// antes da remoção não pode mais entrar nela.
type room struct {
	mu        sync.Mutex
	closed    bool
	members   []Member
	conns     map[Conn]string // conexão -> userId
	pending   []Quest
	active    []Quest
	completed []Quest
}

// target é o destino de um fan-out, capturado sob o lock da sala
type target struct {
	conn   Conn
	userID string
}

// Registry controla as salas e dispara o broadcast de snapshots.
// Salas são efêmeras: criadas no primeiro join, destruídas ao esvaziar.
type Registry struct {
	log   *zap.Logger
	mu    sync.RWMutex
	rooms map[string]*room
}

func NewRegistry(log *zap.Logger) *Registry {
	return &Registry{log: log, rooms: make(map[string]*room)}
}

// getOrCreate retorna a sala, criando com quadro vazio se for a primeira vez
func (r *Registry) getOrCreate(roomID string) *room {
	r.mu.RLock()
	rm, ok := r.rooms[roomID]
	r.mu.RUnlock()
	if ok {
		return rm
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if rm, ok = r.rooms[roomID]; ok {
		return rm
	}
	rm = &room{conns: make(map[Conn]string)}
	r.rooms[roomID] = rm
	roomsActive.Inc()
	return rm
}

func (r *Registry) get(roomID string) *room {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.rooms[roomID]
}

// destroyIfEmpty remove a sala do registro quando não resta conexão.
// Reconfirma sob os dois locks: um join pode ter chegado no meio.
func (r *Registry) destroyIfEmpty(roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rm, ok := r.rooms[roomID]
	if !ok {
		return
	}
	rm.mu.Lock()
	empty := len(rm.conns) == 0
	if empty {
		rm.closed = true
	}
	rm.mu.Unlock()
	if empty {
		delete(r.rooms, roomID)
		roomsActive.Dec()
		r.log.Info("room destroyed", zap.String("roomId", roomID))
	}
}

// Join adiciona o membro à sala (host se for o primeiro) e faz broadcast.
// Um destroyIfEmpty concorrente pode fechar a sala entre o getOrCreate e o
// lock dela; nesse caso o ponteiro é descartado e o lookup recomeça.
func (r *Registry) Join(c Conn, roomID, userID, name string) {
	var rm *room
	for {
		rm = r.getOrCreate(roomID)
		rm.mu.Lock()
		if !rm.closed {
			break
		}
		rm.mu.Unlock()
	}

	rm.conns[c] = userID
	rm.members = append(rm.members, Member{
		UserID: userID,
		Name:   displayName(userID, name),
		IsHost: len(rm.members) == 0,
	})
	snap, targets := rm.snapshotLocked()
	rm.mu.Unlock()

	r.log.Info("user joined room", zap.String("roomId", roomID), zap.String("userId", userID))
	r.fanout(roomID, snap, targets)
}

// Leave remove a conexão e o membro correspondente. Idempotente: uma conexão
// já removida (ex.: podada num broadcast anterior) vira no-op. Destrói a sala
// se ficar vazia; senão, faz broadcast do novo estado.
func (r *Registry) Leave(c Conn, roomID, userID string) {
	rm := r.get(roomID)
	if rm == nil {
		return
	}

	rm.mu.Lock()
	if _, ok := rm.conns[c]; !ok {
		rm.mu.Unlock()
		return
	}
	delete(rm.conns, c)

	kept := rm.members[:0]
	for _, m := range rm.members {
		if m.UserID != userID {
			kept = append(kept, m)
		}
	}
	rm.members = kept

	empty := len(rm.conns) == 0
	var snap Snapshot
	var targets []target
	if !empty {
		snap, targets = rm.snapshotLocked()
	}
	rm.mu.Unlock()

	r.log.Info("user left room", zap.String("roomId", roomID), zap.String("userId", userID))

	if empty {
		r.destroyIfEmpty(roomID)
		return
	}
	r.fanout(roomID, snap, targets)
}

// AcceptQuest move a quest de pending pra active, atribuída ao usuário
func (r *Registry) AcceptQuest(roomID, questID, userID string) {
	r.mutate(roomID, func(rm *room) bool {
		q, rest, ok := takeQuest(rm.pending, questID)
		if !ok {
			return false
		}
		q.Status = QuestActive
		q.AssignedTo = userID
		rm.pending = rest
		rm.active = append(rm.active, q)
		return true
	})
}

// CompleteQuest move a quest de active pra completed
func (r *Registry) CompleteQuest(roomID, questID, userID string) {
	r.mutate(roomID, func(rm *room) bool {
		q, rest, ok := takeQuest(rm.active, questID)
		if !ok {
			return false
		}
		q.Status = QuestCompleted
		q.CompletedBy = userID
		rm.active = rest
		rm.completed = append(rm.completed, q)
		return true
	})
}

// AssignQuest atribui uma quest pendente a um usuário sem movê-la de lista
func (r *Registry) AssignQuest(roomID, questID, assignedTo, assignedBy string) {
	r.mutate(roomID, func(rm *room) bool {
		for i := range rm.pending {
			if rm.pending[i].ID == questID {
				rm.pending[i].AssignedTo = assignedTo
				rm.pending[i].AssignedBy = assignedBy
				return true
			}
		}
		return false
	})
}

// AddQuests anexa um lote de quests geradas externamente ao quadro pendente
func (r *Registry) AddQuests(roomID string, quests []Quest) {
	if len(quests) == 0 {
		return
	}
	r.mutate(roomID, func(rm *room) bool {
		for _, q := range quests {
			if q.Status == "" {
				q.Status = QuestPending
			}
			rm.pending = append(rm.pending, q)
		}
		return true
	})
}

// mutate aplica fn sob o lock da sala e faz broadcast se algo mudou.
// Sala ou quest inexistente é no-op, sem erro pro cliente.
func (r *Registry) mutate(roomID string, fn func(rm *room) bool) {
	rm := r.get(roomID)
	if rm == nil {
		return
	}

	rm.mu.Lock()
	changed := fn(rm)
	var snap Snapshot
	var targets []target
	if changed {
		snap, targets = rm.snapshotLocked()
	}
	rm.mu.Unlock()

	if changed {
		r.fanout(roomID, snap, targets)
	}
}

// takeQuest remove a quest com o id dado da lista, se existir
func takeQuest(list []Quest, questID string) (Quest, []Quest, bool) {
	for i := range list {
		if list[i].ID == questID {
			q := list[i]
			rest := append(append([]Quest{}, list[:i]...), list[i+1:]...)
			return q, rest, true
		}
	}
	return Quest{}, list, false
}

// snapshotLocked copia o estado completo e a lista de destinos.
// Chamar com rm.mu travado; o envio acontece fora do lock.
func (rm *room) snapshotLocked() (Snapshot, []target) {
	snap := Snapshot{
		Type:            "room-updated",
		Members:         append([]Member{}, rm.members...),
		PendingQuests:   append([]Quest{}, rm.pending...),
		ActiveQuests:    append([]Quest{}, rm.active...),
		CompletedQuests: append([]Quest{}, rm.completed...),
	}
	targets := make([]target, 0, len(rm.conns))
	for c, uid := range rm.conns {
		targets = append(targets, target{conn: c, userID: uid})
	}
	return snap, targets
}

// fanout envia o snapshot pra cada conexão da sala. Envios são independentes:
// falha em um destino só poda aquela conexão, depois de entregar aos demais.
func (r *Registry) fanout(roomID string, snap Snapshot, targets []target) {
	var failed []target
	for _, t := range targets {
		if err := t.conn.WriteJSON(snap); err != nil {
			r.log.Warn("room broadcast write failed",
				zap.String("roomId", roomID), zap.String("userId", t.userID), zap.Error(err))
			failed = append(failed, t)
			continue
		}
		messagesSent.Inc()
	}

	for _, t := range failed {
		_ = t.conn.Close()
		r.Leave(t.conn, roomID, t.userID)
	}
}
